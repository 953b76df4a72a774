package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/core/domain"
	"github.com/royalsilk/storefront/internal/core/ports"
)

// CartService persists the domain cart in the visitor's session. Each
// operation loads the cart entry, applies the mutation, and writes the whole
// entry back. Concurrent requests on the same session can lose an update;
// the session is assumed single-writer.
type CartService struct {
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewCartService(sessions ports.SessionStore, logger zerolog.Logger) *CartService {
	return &CartService{sessions: sessions, logger: logger}
}

func (s *CartService) Add(ctx context.Context, sessionID string, productID int, size string, qty int) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.Add(productID, size, qty)
	return s.save(ctx, sessionID, cart)
}

func (s *CartService) Contents(ctx context.Context, sessionID string) ([]domain.Line, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Contents(), nil
}

func (s *CartService) RemoveProduct(ctx context.Context, sessionID string, productID int) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.RemoveProduct(productID)
	return s.save(ctx, sessionID, cart)
}

func (s *CartService) UpdateQuantities(ctx context.Context, sessionID string, quantities map[string]int) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.UpdateQuantities(quantities)
	return s.save(ctx, sessionID, cart)
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	cart.Clear()
	return s.save(ctx, sessionID, cart)
}

// load reads the session's cart entry. An absent entry yields an empty cart.
// An unreadable entry is reset rather than failing the request; the visitor
// loses the cart, not the session.
func (s *CartService) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	raw, found, err := s.sessions.Get(ctx, sessionID, ports.SessionKeyCart)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if !found {
		return &domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		s.logger.Warn().Err(err).Msg("resetting undecodable cart entry")
		return &domain.Cart{}, nil
	}
	return &cart, nil
}

func (s *CartService) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionID, ports.SessionKeyCart, string(raw)); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
