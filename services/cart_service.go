package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golden-elegance/models"
	"golden-elegance/repositories"
	"golden-elegance/ui"

	"go.uber.org/zap"
)

const (
	// CartNamespace prefixes every persisted cart key.
	CartNamespace = "queenOrangeCart"
	// MaxCartQuantity caps the quantity of a single cart line.
	MaxCartQuantity = 10
)

// CartService owns every cart mutation. Each call loads the cart, applies
// the change and persists it before returning, so storage always matches
// the view handed back to the caller.
type CartService struct {
	catalogRepo *repositories.CatalogRepository
	storage     repositories.CartStorage
	log         *zap.Logger
	mu          sync.Mutex
}

func NewCartService(catalogRepo *repositories.CatalogRepository, storage repositories.CartStorage, log *zap.Logger) *CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{
		catalogRepo: catalogRepo,
		storage:     storage,
		log:         log,
	}
}

// CartKey is the storage key of a session's cart. An empty session maps to
// the bare namespace.
func CartKey(session string) string {
	if session == "" {
		return CartNamespace
	}
	return CartNamespace + ":" + session
}

func (s *CartService) GetCart(ctx context.Context, session string) (models.CartView, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return models.CartView{}, err
	}
	return buildView(items), nil
}

// AddToCart adds quantity of the product in size. An existing line for the
// same product and size accumulates; otherwise a snapshot of the product is
// appended.
func (s *CartService) AddToCart(ctx context.Context, session string, productID int, size string, quantity int) (models.CartView, error) {
	product, ok := s.catalogRepo.ProductByID(productID)
	if !ok {
		return models.CartView{}, ErrProductNotFound
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return models.CartView{}, ErrSizeRequired
	}
	if !product.HasSize(size) {
		return models.CartView{}, ErrSizeUnavailable
	}
	quantity = max(1, min(quantity, MaxCartQuantity))

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, session)
	if err != nil {
		return models.CartView{}, err
	}

	if i := indexOf(items, productID, size); i >= 0 {
		items[i].Quantity = min(items[i].Quantity+quantity, MaxCartQuantity)
	} else {
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Size:      size,
			Quantity:  quantity,
			Category:  product.Category,
		})
	}

	if err := s.save(ctx, session, items); err != nil {
		return models.CartView{}, err
	}
	s.log.Debug("cart item added",
		zap.String("key", CartKey(session)),
		zap.Int("product_id", productID),
		zap.String("size", size),
		zap.Int("quantity", quantity),
	)
	return buildView(items), nil
}

// RemoveFromCart drops the matching line. A missing line is not an error.
func (s *CartService) RemoveFromCart(ctx context.Context, session string, productID int, size string) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, session)
	if err != nil {
		return models.CartView{}, err
	}
	i := indexOf(items, productID, size)
	if i < 0 {
		return buildView(items), nil
	}
	items = append(items[:i], items[i+1:]...)

	if err := s.save(ctx, session, items); err != nil {
		return models.CartView{}, err
	}
	return buildView(items), nil
}

// UpdateQuantity sets the line quantity, capped at MaxCartQuantity; zero or
// less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, session string, productID int, size string, quantity int) (models.CartView, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, session, productID, size)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, session)
	if err != nil {
		return models.CartView{}, err
	}
	i := indexOf(items, productID, size)
	if i < 0 {
		return buildView(items), nil
	}
	items[i].Quantity = min(quantity, MaxCartQuantity)

	if err := s.save(ctx, session, items); err != nil {
		return models.CartView{}, err
	}
	return buildView(items), nil
}

// MergeCarts moves every line of the from cart into the to cart, capping each
// line at MaxCartQuantity, then empties the from cart. It runs when a
// shopper signs in so the anonymous cart follows them.
func (s *CartService) MergeCarts(ctx context.Context, from, to string) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.load(ctx, to)
	if err != nil {
		return models.CartView{}, err
	}
	if from == "" || from == to {
		return buildView(target), nil
	}
	source, err := s.load(ctx, from)
	if err != nil {
		return models.CartView{}, err
	}
	if len(source) == 0 {
		return buildView(target), nil
	}

	for _, item := range source {
		qty := max(1, min(item.Quantity, MaxCartQuantity))
		if i := indexOf(target, item.ProductID, item.Size); i >= 0 {
			target[i].Quantity = min(target[i].Quantity+qty, MaxCartQuantity)
			continue
		}
		item.Quantity = qty
		target = append(target, item)
	}

	if err := s.save(ctx, to, target); err != nil {
		return models.CartView{}, err
	}
	if err := s.storage.Clear(ctx, CartKey(from)); err != nil {
		return models.CartView{}, fmt.Errorf("failed to clear merged cart: %w", err)
	}
	s.log.Info("carts merged",
		zap.String("from", CartKey(from)),
		zap.String("to", CartKey(to)),
		zap.Int("lines", len(source)),
	)
	return buildView(target), nil
}

// CheckoutCart hands the cart lines to place while holding the cart lock and
// clears the cart once place succeeds. An empty cart fails with ErrCartEmpty.
func (s *CartService) CheckoutCart(ctx context.Context, owner string, place func([]models.CartItem) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx, owner)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrCartEmpty
	}
	if err := place(items); err != nil {
		return err
	}
	if err := s.storage.Clear(ctx, CartKey(owner)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *CartService) GetCartTotal(ctx context.Context, session string) (int, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return 0, err
	}
	return cartTotal(items), nil
}

// GetCartCount sums quantities, not distinct lines.
func (s *CartService) GetCartCount(ctx context.Context, session string) (int, error) {
	items, err := s.load(ctx, session)
	if err != nil {
		return 0, err
	}
	return cartCount(items), nil
}

func (s *CartService) ClearCart(ctx context.Context, session string) (models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(ctx, CartKey(session)); err != nil {
		return models.CartView{}, fmt.Errorf("failed to clear cart: %w", err)
	}
	return buildView(nil), nil
}

// load reads the persisted cart. Data that does not decode is treated as an
// empty cart.
func (s *CartService) load(ctx context.Context, session string) ([]models.CartItem, error) {
	key := CartKey(session)
	data, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(data) == 0 {
		return []models.CartItem{}, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("discarding unreadable cart", zap.String("key", key), zap.Error(err))
		return []models.CartItem{}, nil
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

func (s *CartService) save(ctx context.Context, session string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, CartKey(session), data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func indexOf(items []models.CartItem, productID int, size string) int {
	for i, item := range items {
		if item.ProductID == productID && item.Size == size {
			return i
		}
	}
	return -1
}

func cartTotal(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

func cartCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func buildView(items []models.CartItem) models.CartView {
	if items == nil {
		items = []models.CartItem{}
	}
	count := cartCount(items)
	return models.CartView{
		Items: items,
		Count: count,
		Total: cartTotal(items),
		Badge: ui.BadgeFor(count),
	}
}
