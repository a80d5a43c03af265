package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/events"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxOrderQuantity bounds a single order. The limit also keeps the total
// far away from int64 overflow for any realistic price.
const maxOrderQuantity = 1000

type OrderInput struct {
	ListingID uuid.UUID
	Quantity  int
	Notes     string
}

type OrderService struct {
	orderRepo   *repository.OrderRepository
	listingRepo *repository.ListingRepository
	broker      events.Broker
}

// NewOrderService wires the order state machine. broker may be nil; event
// publication is best-effort and never fails a request.
func NewOrderService(orderRepo *repository.OrderRepository, listingRepo *repository.ListingRepository, broker events.Broker) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		listingRepo: listingRepo,
		broker:      broker,
	}
}

// Create places a new order as the calling customer. The total amount is
// computed from the listing row read inside the same transaction as the
// insert; a client-supplied amount is never trusted. The listing's current
// owner is snapshotted into HomemakerID.
func (s *OrderService) Create(customerID uuid.UUID, role models.Role, in OrderInput) (*models.Order, error) {
	if role != models.RoleCustomer {
		logger.Log.Warn("Order creation rejected: not a customer",
			zap.String("user_id", customerID.String()),
			zap.String("role", string(role)),
		)
		return nil, ErrForbidden
	}

	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if in.Quantity > maxOrderQuantity {
		return nil, fmt.Errorf("%w: quantity must be at most %d", ErrValidation, maxOrderQuantity)
	}

	var order *models.Order

	err := s.orderRepo.DB().Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Where("id = ?", in.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if listing.Status != models.ListingStatusActive {
			return fmt.Errorf("%w: listing is not active", ErrValidation)
		}
		if listing.OwnerID == customerID {
			return fmt.Errorf("%w: cannot order your own listing", ErrForbidden)
		}
		// The quantity cap alone does not rule out overflow for an
		// arbitrarily large stored price.
		if listing.Price > math.MaxInt64/int64(in.Quantity) {
			return fmt.Errorf("%w: order total is too large", ErrValidation)
		}

		order = &models.Order{
			ListingID:   listing.ID,
			CustomerID:  customerID,
			HomemakerID: listing.OwnerID,
			Status:      models.OrderStatusPending,
			Quantity:    in.Quantity,
			TotalAmount: listing.Price * int64(in.Quantity),
			Notes:       in.Notes,
		}

		return tx.Create(order).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) || errors.Is(err, ErrForbidden) {
			logger.Log.Warn("Order creation rejected",
				zap.String("customer_id", customerID.String()),
				zap.String("listing_id", in.ListingID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		logger.Log.Error("Failed to create order",
			zap.String("customer_id", customerID.String()),
			zap.String("listing_id", in.ListingID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("homemaker_id", order.HomemakerID.String()),
		zap.Int64("total_amount", order.TotalAmount),
	)

	s.publish(order)

	return order, nil
}

// GetByID returns an order visible only to its two participants.
func (s *OrderService) GetByID(callerID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.CustomerID != callerID && order.HomemakerID != callerID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) ListForUser(userID uuid.UUID) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// Complete applies paid -> completed. Only the order's homemaker may call it.
func (s *OrderService) Complete(callerID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, models.OrderStatusCompleted, func(o *models.Order) error {
		if o.HomemakerID != callerID {
			return ErrForbidden
		}
		if o.Status != models.OrderStatusPaid {
			return ErrInvalidTransition
		}
		return nil
	})
}

// Cancel applies pending|paid -> canceled. Only the order's customer may
// call it.
func (s *OrderService) Cancel(callerID, orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, models.OrderStatusCanceled, func(o *models.Order) error {
		if o.CustomerID != callerID {
			return ErrForbidden
		}
		if o.Status != models.OrderStatusPending && o.Status != models.OrderStatusPaid {
			return ErrInvalidTransition
		}
		return nil
	})
}

// ConfirmPayment applies pending -> paid. It is reserved for the payment
// provider's confirmation webhook; neither marketplace role can reach it
// through the status endpoint.
func (s *OrderService) ConfirmPayment(orderID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, models.OrderStatusPaid, func(o *models.Order) error {
		if o.Status != models.OrderStatusPending {
			return ErrInvalidTransition
		}
		return nil
	})
}

// transition re-reads the order inside a transaction, applies the guard
// against the fresh row and writes the new status. A failed guard mutates
// nothing.
func (s *OrderService) transition(orderID uuid.UUID, to models.OrderStatus, guard func(*models.Order) error) (*models.Order, error) {
	var order models.Order

	err := s.orderRepo.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := guard(&order); err != nil {
			return err
		}

		order.Status = to
		order.UpdatedAt = time.Now()
		return tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]interface{}{"status": to, "updated_at": order.UpdatedAt}).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrInvalidTransition) {
			logger.Log.Warn("Order transition rejected",
				zap.String("order_id", orderID.String()),
				zap.String("to", string(to)),
				zap.Error(err),
			)
			return nil, err
		}
		logger.Log.Error("Order transition failed",
			zap.String("order_id", orderID.String()),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(to)),
	)

	s.publish(&order)

	return &order, nil
}

func (s *OrderService) publish(order *models.Order) {
	if s.broker == nil {
		return
	}
	ev := events.OrderEvent{
		OrderID:     order.ID,
		ListingID:   order.ListingID,
		CustomerID:  order.CustomerID,
		HomemakerID: order.HomemakerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now(),
	}
	if err := s.broker.Publish(ev); err != nil {
		logger.Log.Warn("Failed to publish order event",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}
