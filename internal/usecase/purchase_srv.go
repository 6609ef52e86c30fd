package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/scheduling"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PurchaseService interface {
	// InitiatePurchase holds the best available seats for the requested
	// ticket count. The hold expires after the configured seat selection
	// window unless the purchase moves to created.
	InitiatePurchase(ctx context.Context, userID uuid.UUID, req *request.InitiatePurchaseRequest) (*response.PurchaseResponse, error)

	// CreatePurchase confirms the final seat choice and optional discount
	// for an initiated, unexpired purchase.
	CreatePurchase(ctx context.Context, userID uuid.UUID, purchaseID string, req *request.CreatePurchaseRequest) (*response.PurchaseResponse, error)

	// ExecutePurchase records payment for a created purchase and issues
	// its ticket QR code.
	ExecutePurchase(ctx context.Context, userID uuid.UUID, purchaseID string, req *request.ExecutePurchaseRequest) (*response.PurchaseResponse, error)

	GetPurchaseByID(ctx context.Context, userID uuid.UUID, isAdmin bool, purchaseID string) (*response.PurchaseResponse, error)
	GetUserPurchases(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PurchaseResponse], error)
	GetPurchases(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PurchaseResponse], error)
}

type purchaseService struct {
	repo   *repository.Repository // purchase, showtime, hall & movie repos
	rules  *ruleLoader
	locks  *showtimeLocks
	config *utils.Config
	log    *zap.Logger
}

func NewPurchaseService(
	repo *repository.Repository,
	rules *ruleLoader,
	locks *showtimeLocks,
	config *utils.Config,
	log *zap.Logger,
) PurchaseService {
	return &purchaseService{
		repo:   repo,
		rules:  rules,
		locks:  locks,
		config: config,
		log:    log.With(zap.String("service", "purchase")),
	}
}

func (s *purchaseService) InitiatePurchase(ctx context.Context, userID uuid.UUID, req *request.InitiatePurchaseRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Initiate purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	showtimeID, _ := uuid.Parse(req.ShowtimeID)

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeID)
	if err != nil {
		s.log.Error("Failed to find showtime", zap.Error(err), zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("find showtime: %w", err)
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %w", ErrNotFound)
	}
	if showtime.StartedDateTime.Before(time.Now()) {
		return nil, fmt.Errorf("%w: showtime has already started", ErrValidation)
	}

	hall, err := s.repo.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		s.log.Error("Failed to find hall", zap.Error(err), zap.String("hall_id", showtime.HallID.String()))
		return nil, fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("hall %w", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
	if err != nil {
		s.log.Error("Failed to find movie", zap.Error(err), zap.String("movie_id", showtime.MovieID.String()))
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %w", ErrNotFound)
	}

	rules := s.rules.Rules(ctx)
	if req.NumberTickets > rules.MaxTicketsPerPurchase {
		return nil, fmt.Errorf("%w: at most %d tickets per purchase", ErrValidation, rules.MaxTicketsPerPurchase)
	}

	// Reading the taken seats and inserting the hold are two storage round
	// trips; the per-showtime lock makes them atomic against concurrent
	// initiations for the same showtime.
	lock := s.locks.Get(showtimeID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	takenSeats, err := s.repo.Purchase.FindTakenSeats(ctx, showtimeID, now)
	if err != nil {
		s.log.Error("Failed to get taken seats", zap.Error(err), zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("get taken seats: %w", err)
	}

	grid := scheduling.NewSeatGrid(hall.SeatRows, hall.SeatColumns)
	seats, err := scheduling.Allocate(grid, req.NumberTickets, scheduling.TakenSet(takenSeats))
	if err != nil {
		if errors.Is(err, scheduling.ErrInsufficientCapacity) {
			s.log.Warn("Not enough seats",
				zap.String("showtime_id", req.ShowtimeID),
				zap.Int("requested", req.NumberTickets),
				zap.Int("taken", len(takenSeats)),
				zap.Int("capacity", grid.Capacity()))
			return nil, ErrSeatsUnavailable
		}
		return nil, fmt.Errorf("allocate seats: %w", err)
	}

	purchase := &entity.Purchase{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PurchaseCode:           utils.GeneratePurchaseCode(),
		UserID:                 userID,
		ShowtimeID:             showtimeID,
		NumberTickets:          req.NumberTickets,
		ChosenSeats:            seats,
		Status:                 entity.PurchaseStatusInitiated,
		OriginalAmount:         movie.TicketPrice * float64(req.NumberTickets),
		ExpiredSeatSelectionAt: now.Add(rules.SeatSelectionWindow()),
		QRCodeImage:            utils.QRCodePlaceholder,
	}

	if err := s.repo.Purchase.Create(ctx, purchase); err != nil {
		s.log.Error("Failed to create purchase",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("showtime_id", req.ShowtimeID))
		return nil, fmt.Errorf("create purchase: %w", err)
	}

	s.log.Info("Purchase initiated",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("purchase_code", purchase.PurchaseCode),
		zap.String("user_id", userID.String()),
		zap.Strings("seats", seats))

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) CreatePurchase(ctx context.Context, userID uuid.UUID, purchaseID string, req *request.CreatePurchaseRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	purchase, err := s.findOwnedPurchase(ctx, userID, purchaseID)
	if err != nil {
		return nil, err
	}

	// The expiry check and the confirmation write run under the same
	// per-showtime lock as the initiation path, with the purchase re-read
	// inside it. A hold that expires mid-confirmation would otherwise have
	// its seats handed to a concurrent initiation and still be committed.
	lock := s.locks.Get(purchase.ShowtimeID)
	lock.Lock()
	defer lock.Unlock()

	purchase, err = s.findOwnedPurchase(ctx, userID, purchaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !purchase.Status.CanTransitionTo(entity.PurchaseStatusCreated) {
		return nil, fmt.Errorf("%w: purchase is %s", ErrInvalidState, purchase.Status)
	}
	if purchase.HoldExpired(now) {
		return nil, fmt.Errorf("%w: seat selection window has expired", ErrInvalidState)
	}

	// Final seats must be exactly as many as the tickets and drawn from
	// the seats held at initiation
	if len(req.ChosenSeats) != purchase.NumberTickets {
		return nil, fmt.Errorf("%w: expected %d seats, got %d", ErrValidation, purchase.NumberTickets, len(req.ChosenSeats))
	}
	held := scheduling.TakenSet(purchase.ChosenSeats)
	seen := make(map[string]struct{}, len(req.ChosenSeats))
	for _, seat := range req.ChosenSeats {
		if _, dup := seen[seat]; dup {
			return nil, fmt.Errorf("%w: duplicate seat %q", ErrValidation, seat)
		}
		seen[seat] = struct{}{}
		if _, ok := held[seat]; !ok {
			return nil, fmt.Errorf("%w: seat %q is not part of this purchase's hold", ErrValidation, seat)
		}
	}

	if req.DiscountType != nil {
		discountType := entity.DiscountType(*req.DiscountType)
		amount := 0.0
		if req.DiscountAmount != nil {
			amount = *req.DiscountAmount
		}
		if discountType == entity.DiscountTypePercent && amount > 100 {
			return nil, fmt.Errorf("%w: percent discount cannot exceed 100", ErrValidation)
		}
		purchase.DiscountType = discountType
		purchase.DiscountAmount = amount
	}

	purchase.ChosenSeats = req.ChosenSeats
	purchase.Status = entity.PurchaseStatusCreated
	purchase.UpdatedAt = now

	if err := s.repo.Purchase.Update(ctx, purchase); err != nil {
		s.log.Error("Failed to update purchase", zap.Error(err), zap.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("update purchase: %w", err)
	}

	s.log.Info("Purchase created",
		zap.String("purchase_id", purchaseID),
		zap.Strings("seats", purchase.ChosenSeats))

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) ExecutePurchase(ctx context.Context, userID uuid.UUID, purchaseID string, req *request.ExecutePurchaseRequest) (*response.PurchaseResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Execute purchase validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	purchase, err := s.findOwnedPurchase(ctx, userID, purchaseID)
	if err != nil {
		return nil, err
	}

	if !purchase.Status.CanTransitionTo(entity.PurchaseStatusExecuted) {
		return nil, fmt.Errorf("%w: purchase is %s", ErrInvalidState, purchase.Status)
	}

	now := time.Now()
	paymentAmount := purchase.FinalAmount()

	purchase.Status = entity.PurchaseStatusExecuted
	purchase.PaymentMethod = &req.PaymentMethod
	purchase.PaymentAmount = &paymentAmount
	purchase.PaymentDate = &now
	purchase.UpdatedAt = now

	// Ticket QR failure never blocks the payment; the purchase keeps the
	// placeholder and the image can be regenerated later
	qrPath, err := utils.GenerateQRCode(s.config.App.UploadDir, purchase.PurchaseCode, purchase.PurchaseCode)
	if err != nil {
		s.log.Warn("Failed to generate ticket QR code",
			zap.Error(err),
			zap.String("purchase_code", purchase.PurchaseCode))
	} else {
		purchase.QRCodeImage = qrPath
	}

	if err := s.repo.Purchase.Update(ctx, purchase); err != nil {
		s.log.Error("Failed to update purchase", zap.Error(err), zap.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("update purchase: %w", err)
	}

	s.log.Info("Purchase executed",
		zap.String("purchase_id", purchaseID),
		zap.String("payment_method", req.PaymentMethod),
		zap.Float64("payment_amount", paymentAmount))

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) GetPurchaseByID(ctx context.Context, userID uuid.UUID, isAdmin bool, purchaseID string) (*response.PurchaseResponse, error) {
	id, err := uuid.Parse(purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase id", ErrValidation)
	}

	purchase, err := s.repo.Purchase.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find purchase", zap.Error(err), zap.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	// Non-owners get the same answer as a missing purchase
	if purchase == nil || (!isAdmin && purchase.UserID != userID) {
		return nil, fmt.Errorf("purchase %w", ErrNotFound)
	}

	resp := response.PurchaseToResponse(purchase)
	return &resp, nil
}

func (s *purchaseService) GetUserPurchases(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PurchaseResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	purchases, err := s.repo.Purchase.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user purchases", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user purchases: %w", err)
	}

	total, err := s.repo.Purchase.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user purchases", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("count user purchases: %w", err)
	}

	return response.NewPaginatedResponse(response.PurchasesToResponse(purchases), req.Page, limit, total), nil
}

func (s *purchaseService) GetPurchases(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PurchaseResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	purchases, err := s.repo.Purchase.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get purchases", zap.Error(err))
		return nil, fmt.Errorf("get purchases: %w", err)
	}

	total, err := s.repo.Purchase.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count purchases", zap.Error(err))
		return nil, fmt.Errorf("count purchases: %w", err)
	}

	return response.NewPaginatedResponse(response.PurchasesToResponse(purchases), req.Page, limit, total), nil
}

func (s *purchaseService) findOwnedPurchase(ctx context.Context, userID uuid.UUID, purchaseID string) (*entity.Purchase, error) {
	id, err := uuid.Parse(purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid purchase id", ErrValidation)
	}

	purchase, err := s.repo.Purchase.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find purchase", zap.Error(err), zap.String("purchase_id", purchaseID))
		return nil, fmt.Errorf("find purchase: %w", err)
	}
	if purchase == nil || purchase.UserID != userID {
		return nil, fmt.Errorf("purchase %w", ErrNotFound)
	}

	return purchase, nil
}
