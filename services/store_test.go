package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/models"
	"storefront/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memoryStore backs the service tests with an in-memory implementation of the
// repository interfaces. It mirrors the store's contracts: cart adds merge by
// (user, product), checkout and payment either apply fully or leave the maps
// untouched, and user-scoped lookups miss on foreign rows.
type memoryStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]models.User
	categories map[uuid.UUID]models.Category
	products   map[uuid.UUID]models.Product
	cartLines  map[uuid.UUID]models.CartLine
	orders     map[uuid.UUID]models.Order
	payments   map[uuid.UUID]models.Payment // keyed by order id
	reviews    []models.Review

	// failWith, when set, makes every mutation and lookup fail before
	// touching any state.
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[uuid.UUID]models.User),
		categories: make(map[uuid.UUID]models.Category),
		products:   make(map[uuid.UUID]models.Product),
		cartLines:  make(map[uuid.UUID]models.CartLine),
		orders:     make(map[uuid.UUID]models.Order),
		payments:   make(map[uuid.UUID]models.Payment),
	}
}

func (s *memoryStore) seedProduct(name string, price string, active bool) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := models.Category{ID: uuid.New(), Name: "Apparel", Active: true}
	s.categories[category.ID] = category

	product := models.Product{
		ID:         uuid.New(),
		Name:       name,
		Price:      mustDecimal(price),
		CategoryID: category.ID,
		Active:     active,
	}
	s.products[product.ID] = product
	return product
}

func (s *memoryStore) cartLineCount(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, line := range s.cartLines {
		if line.UserID == userID {
			n++
		}
	}
	return n
}

func (s *memoryStore) lineFor(userID, productID uuid.UUID) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.cartLines {
		if line.UserID == userID && line.ProductID == productID {
			return line, true
		}
	}
	return models.CartLine{}, false
}

func (s *memoryStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// ProductRepository

func (s *memoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (s *memoryStore) FindActive(ctx context.Context, categoryID *uuid.UUID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	var products []models.Product
	for _, p := range s.products {
		if !p.Active {
			continue
		}
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *memoryStore) FindActiveCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	var categories []models.Category
	for _, c := range s.categories {
		if c.Active {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// CartRepository

func (s *memoryStore) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	for id, line := range s.cartLines {
		if line.UserID == userID && line.ProductID == productID {
			line.Quantity += qty
			line.AddedAt = time.Now()
			s.cartLines[id] = line
			return nil
		}
	}
	line := models.CartLine{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}
	s.cartLines[line.ID] = line
	return nil
}

func (s *memoryStore) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	line, ok := s.cartLines[lineID]
	if !ok || line.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	line.Quantity = qty
	line.AddedAt = time.Now()
	s.cartLines[lineID] = line
	return nil
}

func (s *memoryStore) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}
	line, ok := s.cartLines[lineID]
	if !ok || line.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.cartLines, lineID)
	return nil
}

func (s *memoryStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.CartLineDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	var details []models.CartLineDetail
	for _, line := range s.cartLines {
		if line.UserID != userID {
			continue
		}
		product := s.products[line.ProductID]
		details = append(details, models.CartLineDetail{
			LineID:    line.ID,
			ProductID: line.ProductID,
			Name:      product.Name,
			Color:     product.Color,
			Category:  s.categories[product.CategoryID].Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].AddedAt.After(details[j].AddedAt) })
	return details, nil
}

// OrderRepository

func (s *memoryStore) CreateFromCart(ctx context.Context, userID uuid.UUID, orderNumber, shippingAddress string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	var lines []models.CartLine
	for _, line := range s.cartLines {
		if line.UserID == userID {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, repository.ErrEmptyCart
	}

	// Validate everything before mutating anything.
	total := mustDecimal("0")
	items := make([]models.OrderItem, 0, len(lines))
	orderID := uuid.New()
	for _, line := range lines {
		product, ok := s.products[line.ProductID]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		if !product.Active {
			return nil, repository.ErrProductInactive
		}
		lineTotal := product.Price.Mul(mustDecimalInt(line.Quantity))
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			PriceAtOrder: product.Price,
		})
	}

	order := models.Order{
		ID:              orderID,
		UserID:          userID,
		OrderNumber:     orderNumber,
		Status:          models.OrderStatusCreated,
		Total:           total,
		ShippingAddress: shippingAddress,
		CreatedAt:       time.Now(),
		OrderItems:      items,
	}
	s.orders[order.ID] = order
	for _, line := range lines {
		delete(s.cartLines, line.ID)
	}
	return &order, nil
}

func (s *memoryStore) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &order, nil
}

func (s *memoryStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	var orders []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// PaymentRepository

func (s *memoryStore) RecordForOrder(ctx context.Context, userID, orderID uuid.UUID, method, transactionRef string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	order, ok := s.orders[orderID]
	if !ok || order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	if order.Status != models.OrderStatusCreated {
		return nil, repository.ErrOrderNotPayable
	}

	payment := models.Payment{
		ID:             uuid.New(),
		OrderID:        orderID,
		Method:         method,
		Status:         models.PaymentStatusSuccessful,
		Amount:         order.Total,
		PaidAt:         time.Now(),
		TransactionRef: transactionRef,
	}
	s.payments[orderID] = payment
	order.Status = models.OrderStatusPaid
	s.orders[orderID] = order
	return &payment, nil
}

func (s *memoryStore) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}
	payment, ok := s.payments[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

// userStore adapts memoryStore to UserRepository; the method names collide
// with the product view otherwise.
type userStore struct {
	s *memoryStore
}

func (u *userStore) Create(ctx context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.failWith != nil {
		return u.s.failWith
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.failWith != nil {
		return nil, u.s.failWith
	}
	for _, user := range u.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (u *userStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.failWith != nil {
		return nil, u.s.failWith
	}
	user, ok := u.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (u *userStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.failWith != nil {
		return u.s.failWith
	}
	user, ok := u.s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = hash
	u.s.users[id] = user
	return nil
}

// reviewStore adapts memoryStore to ReviewRepository.
type reviewStore struct {
	s *memoryStore
}

func (r *reviewStore) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failWith != nil {
		return r.s.failWith
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.s.reviews = append(r.s.reviews, *review)
	return nil
}

func (r *reviewStore) FindApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.ReviewDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	var details []models.ReviewDetail
	for _, review := range r.s.reviews {
		if review.Approved && review.ProductID == productID {
			details = append(details, r.detail(review))
		}
	}
	return details, nil
}

func (r *reviewStore) FindRecentApproved(ctx context.Context, limit int) ([]models.ReviewDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	var details []models.ReviewDetail
	for _, review := range r.s.reviews {
		if review.Approved {
			details = append(details, r.detail(review))
		}
	}
	sort.Slice(details, func(i, j int) bool { return details[i].CreatedAt.After(details[j].CreatedAt) })
	if len(details) > limit {
		details = details[:limit]
	}
	return details, nil
}

func (r *reviewStore) detail(review models.Review) models.ReviewDetail {
	user := r.s.users[review.UserID]
	product := r.s.products[review.ProductID]
	return models.ReviewDetail{
		Comment:     review.Comment,
		Rating:      review.Rating,
		CreatedAt:   review.CreatedAt,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		ProductName: product.Name,
	}
}

// captureProducer records published events for assertions.
type captureProducer struct {
	mu       sync.Mutex
	keys     []string
	payloads [][]byte
	err      error
}

func (p *captureProducer) Publish(ctx context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, value)
	return nil
}

func (p *captureProducer) Close() error {
	return nil
}

func (p *captureProducer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func mustDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func mustDecimalInt(value int) decimal.Decimal {
	return decimal.NewFromInt(int64(value))
}
