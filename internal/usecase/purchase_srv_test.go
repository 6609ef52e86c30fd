package usecase

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/internal/scheduling"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purchaseEnv struct {
	repo       *repository.Repository
	service    PurchaseService
	userID     uuid.UUID
	showtimeID uuid.UUID
}

// newPurchaseEnv seeds a future showtime of a 50000-per-ticket movie in a
// hall with the given seat geometry
func newPurchaseEnv(t *testing.T, rows, columns []string) *purchaseEnv {
	t.Helper()

	repo := &repository.Repository{
		Movie:    newFakeMovieRepo(),
		Hall:     newFakeHallRepo(),
		Showtime: newFakeShowtimeRepo(),
		Purchase: newFakePurchaseRepo(),
		Setting:  newFakeSettingRepo(),
	}
	ctx := context.Background()

	movie := &entity.Movie{
		Base:              entity.Base{ID: uuid.New()},
		Title:             "Dune",
		DurationInMinutes: 150,
		TicketPrice:       50000,
	}
	require.NoError(t, repo.Movie.Create(ctx, movie))

	hall := &entity.Hall{
		Base:        entity.Base{ID: uuid.New()},
		CinemaID:    uuid.New(),
		HallNumber:  1,
		SeatRows:    rows,
		SeatColumns: columns,
	}
	require.NoError(t, repo.Hall.Create(ctx, hall))

	showtime := &entity.Showtime{
		Base:            entity.Base{ID: uuid.New()},
		MovieID:         movie.ID,
		HallID:          hall.ID,
		StartedDateTime: time.Now().Add(48 * time.Hour),
		EndedDateTime:   time.Now().Add(48*time.Hour + 150*time.Minute),
	}
	require.NoError(t, repo.Showtime.Create(ctx, showtime))

	log := zap.NewNop()
	config := &utils.Config{App: utils.AppConfig{UploadDir: t.TempDir()}}
	service := NewPurchaseService(repo, newRuleLoader(repo.Setting, log), newShowtimeLocks(), config, log)

	return &purchaseEnv{
		repo:       repo,
		service:    service,
		userID:     uuid.New(),
		showtimeID: showtime.ID,
	}
}

func (e *purchaseEnv) initiate(t *testing.T, tickets int) *response.PurchaseResponse {
	t.Helper()
	resp, err := e.service.InitiatePurchase(context.Background(), e.userID, &request.InitiatePurchaseRequest{
		ShowtimeID:    e.showtimeID.String(),
		NumberTickets: tickets,
	})
	require.NoError(t, err)
	return resp
}

func TestInitiatePurchaseAllocatesRowMajor(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A", "B"}, []string{"1", "2"})

	first := env.initiate(t, 3)
	require.Equal(t, entity.PurchaseStatusInitiated, first.Status)
	require.Equal(t, []string{"A1", "A2", "B1"}, first.ChosenSeats)
	require.Equal(t, 150000.0, first.OriginalAmount)
	require.True(t, first.ExpiredSeatSelectionAt.After(time.Now()))

	// The next purchase picks up where the hold left off
	second := env.initiate(t, 1)
	require.Equal(t, []string{"B2"}, second.ChosenSeats)
}

func TestInitiatePurchaseSoldOut(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	env.initiate(t, 2)

	_, err := env.service.InitiatePurchase(context.Background(), env.userID, &request.InitiatePurchaseRequest{
		ShowtimeID:    env.showtimeID.String(),
		NumberTickets: 1,
	})
	require.ErrorIs(t, err, ErrSeatsUnavailable)
}

func TestInitiatePurchaseTicketLimit(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A", "B", "C"}, []string{"1", "2", "3"})

	_, err := env.service.InitiatePurchase(context.Background(), env.userID, &request.InitiatePurchaseRequest{
		ShowtimeID:    env.showtimeID.String(),
		NumberTickets: 7, // default limit is 6
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestInitiatePurchaseStartedShowtime(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1"})

	showtime, err := env.repo.Showtime.FindByID(context.Background(), env.showtimeID)
	require.NoError(t, err)
	showtime.StartedDateTime = time.Now().Add(-time.Minute)
	require.NoError(t, env.repo.Showtime.Update(context.Background(), showtime))

	_, err = env.service.InitiatePurchase(context.Background(), env.userID, &request.InitiatePurchaseRequest{
		ShowtimeID:    env.showtimeID.String(),
		NumberTickets: 1,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestExpiredHoldReleasesSeats(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	hold := env.initiate(t, 2)

	// Age the hold past its window
	id, err := uuid.Parse(hold.ID)
	require.NoError(t, err)
	purchase, err := env.repo.Purchase.FindByID(context.Background(), id)
	require.NoError(t, err)
	purchase.ExpiredSeatSelectionAt = time.Now().Add(-time.Second)
	require.NoError(t, env.repo.Purchase.Update(context.Background(), purchase))

	// The seats come straight back to the pool
	fresh := env.initiate(t, 2)
	require.Equal(t, []string{"A1", "A2"}, fresh.ChosenSeats)

	// And the stale hold can no longer be confirmed
	_, err = env.service.CreatePurchase(context.Background(), env.userID, hold.ID, &request.CreatePurchaseRequest{
		ChosenSeats: []string{"A1", "A2"},
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestPurchaseLifecycle(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A", "B"}, []string{"1", "2"})
	initiated := env.initiate(t, 2)

	discountType := "percent"
	discountAmount := 10.0
	created, err := env.service.CreatePurchase(context.Background(), env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats:    []string{"A2", "A1"},
		DiscountType:   &discountType,
		DiscountAmount: &discountAmount,
	})
	require.NoError(t, err)
	require.Equal(t, entity.PurchaseStatusCreated, created.Status)
	require.Equal(t, []string{"A2", "A1"}, created.ChosenSeats)

	executed, err := env.service.ExecutePurchase(context.Background(), env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)
	require.Equal(t, entity.PurchaseStatusExecuted, executed.Status)
	require.NotNil(t, executed.PaymentAmount)
	require.Equal(t, 90000.0, *executed.PaymentAmount) // 100000 - 10%
	require.NotNil(t, executed.PaymentDate)
	require.NotEqual(t, utils.QRCodePlaceholder, executed.QRCodeImage)
}

func TestPurchaseLifecycleIsForwardOnly(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	initiated := env.initiate(t, 1)
	ctx := context.Background()

	// Executing straight from initiated skips a state
	_, err := env.service.ExecutePurchase(ctx, env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = env.service.CreatePurchase(ctx, env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats: []string{"A1"},
	})
	require.NoError(t, err)

	// Confirming twice replays a finished transition
	_, err = env.service.CreatePurchase(ctx, env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats: []string{"A1"},
	})
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = env.service.ExecutePurchase(ctx, env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	// Executed is terminal
	_, err = env.service.ExecutePurchase(ctx, env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "cash",
	})
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestCreatePurchaseSeatValidation(t *testing.T) {
	tests := []struct {
		name  string
		seats []string
	}{
		{"wrong cardinality", []string{"A1"}},
		{"outside the hold", []string{"A1", "B2"}},
		{"duplicate seat", []string{"A1", "A1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newPurchaseEnv(t, []string{"A", "B"}, []string{"1", "2"})
			initiated := env.initiate(t, 2) // holds A1, A2

			_, err := env.service.CreatePurchase(context.Background(), env.userID, initiated.ID, &request.CreatePurchaseRequest{
				ChosenSeats: tc.seats,
			})
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreatePurchaseRejectsExcessivePercent(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1"})
	initiated := env.initiate(t, 1)

	discountType := "percent"
	discountAmount := 150.0
	_, err := env.service.CreatePurchase(context.Background(), env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats:    []string{"A1"},
		DiscountType:   &discountType,
		DiscountAmount: &discountAmount,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestExecutePurchaseFlatDiscountFloorsAtZero(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1"})
	initiated := env.initiate(t, 1)
	ctx := context.Background()

	discountType := "flat"
	discountAmount := 999999.0
	_, err := env.service.CreatePurchase(ctx, env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats:    []string{"A1"},
		DiscountType:   &discountType,
		DiscountAmount: &discountAmount,
	})
	require.NoError(t, err)

	executed, err := env.service.ExecutePurchase(ctx, env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, *executed.PaymentAmount)
}

func TestPurchaseOwnership(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	initiated := env.initiate(t, 1)
	stranger := uuid.New()
	ctx := context.Background()

	_, err := env.service.CreatePurchase(ctx, stranger, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats: []string{"A1"},
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = env.service.GetPurchaseByID(ctx, stranger, false, initiated.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Admins can read any purchase
	resp, err := env.service.GetPurchaseByID(ctx, stranger, true, initiated.ID)
	require.NoError(t, err)
	require.Equal(t, initiated.ID, resp.ID)
}

// TestConcurrentInitiationsNeverDoubleBook drives many simultaneous
// initiations at one showtime and checks that no seat is sold twice and no
// purchase exceeds the hall capacity.
func TestConcurrentInitiationsNeverDoubleBook(t *testing.T) {
	rows := []string{"A", "B", "C", "D"}
	columns := []string{"1", "2", "3", "4"}
	env := newPurchaseEnv(t, rows, columns) // 16 seats

	const workers = 10
	results := make([][]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := env.service.InitiatePurchase(context.Background(), uuid.New(), &request.InitiatePurchaseRequest{
				ShowtimeID:    env.showtimeID.String(),
				NumberTickets: 2,
			})
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = resp.ChosenSeats
		}(i)
	}
	wg.Wait()

	seatOwners := make(map[string]int)
	sold := 0
	for i, seats := range results {
		for _, seat := range seats {
			seatOwners[seat]++
			require.Equal(t, 1, seatOwners[seat], "seat %s sold to worker %d twice", seat, i)
		}
		sold += len(seats)
	}
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrSeatsUnavailable)
		}
	}

	// 10 workers x 2 tickets against 16 seats: exactly 8 succeed
	require.Equal(t, 16, sold)
	require.Len(t, seatOwners, 16)
}

// TestConfirmingExpiringHoldNeverDoubleBooks stalls a confirmation's write
// while its hold lapses and a rival initiation arrives for the same seats.
// Confirmation and initiation serialize on the showtime, so the rival waits
// for the commit and finds the seats taken.
func TestConfirmingExpiringHoldNeverDoubleBooks(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	hold := env.initiate(t, 2) // holds A1, A2
	ctx := context.Background()

	// Shrink the hold's window so it lapses while the write is stalled
	id, err := uuid.Parse(hold.ID)
	require.NoError(t, err)
	purchase, err := env.repo.Purchase.FindByID(ctx, id)
	require.NoError(t, err)
	purchase.ExpiredSeatSelectionAt = time.Now().Add(300 * time.Millisecond)
	require.NoError(t, env.repo.Purchase.Update(ctx, purchase))

	writing := make(chan struct{})
	release := make(chan struct{})
	env.repo.Purchase.(*fakePurchaseRepo).beforeUpdate = func() {
		close(writing)
		<-release
	}

	confirmErr := make(chan error, 1)
	go func() {
		_, err := env.service.CreatePurchase(ctx, env.userID, hold.ID, &request.CreatePurchaseRequest{
			ChosenSeats: []string{"A1", "A2"},
		})
		confirmErr <- err
	}()

	select {
	case <-writing:
	case err := <-confirmErr:
		t.Fatalf("confirmation returned before its write: %v", err)
	}

	// Let the hold lapse, then send in the rival initiation
	time.Sleep(500 * time.Millisecond)
	initErr := make(chan error, 1)
	go func() {
		_, err := env.service.InitiatePurchase(ctx, uuid.New(), &request.InitiatePurchaseRequest{
			ShowtimeID:    env.showtimeID.String(),
			NumberTickets: 2,
		})
		initErr <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.NoError(t, <-confirmErr)
	require.ErrorIs(t, <-initErr, ErrSeatsUnavailable)

	// No seat label may appear in two live purchases
	now := time.Now()
	all, err := env.repo.Purchase.FindAll(ctx, 100, 0)
	require.NoError(t, err)
	owners := make(map[string]int)
	for _, p := range all {
		if p.HoldExpired(now) {
			continue
		}
		for _, seat := range p.ChosenSeats {
			owners[seat]++
			require.Equal(t, 1, owners[seat], "seat %s booked twice", seat)
		}
	}
}

// TestAmountsLockedAtInitiation reprices the movie mid-purchase; the amounts
// stay what they were when the seats were held.
func TestAmountsLockedAtInitiation(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A"}, []string{"1", "2"})
	initiated := env.initiate(t, 2)
	require.Equal(t, 100000.0, initiated.OriginalAmount)
	ctx := context.Background()

	showtime, err := env.repo.Showtime.FindByID(ctx, env.showtimeID)
	require.NoError(t, err)
	movie, err := env.repo.Movie.FindByID(ctx, showtime.MovieID)
	require.NoError(t, err)
	movie.TicketPrice = 80000
	require.NoError(t, env.repo.Movie.Update(ctx, movie))

	_, err = env.service.CreatePurchase(ctx, env.userID, initiated.ID, &request.CreatePurchaseRequest{
		ChosenSeats: []string{"A1", "A2"},
	})
	require.NoError(t, err)

	executed, err := env.service.ExecutePurchase(ctx, env.userID, initiated.ID, &request.ExecutePurchaseRequest{
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, 100000.0, executed.OriginalAmount)
	require.Equal(t, 100000.0, *executed.PaymentAmount)
}

func TestTicketLimitSettingOverride(t *testing.T) {
	env := newPurchaseEnv(t, []string{"A", "B", "C"}, []string{"1", "2", "3"})

	require.NoError(t, env.repo.Setting.Create(context.Background(), &entity.Setting{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Key:          scheduling.SettingMaxTicketsPerPurchase,
		Type:         entity.SettingTypeNumber,
		Value:        strconv.Itoa(2),
	}))

	_, err := env.service.InitiatePurchase(context.Background(), env.userID, &request.InitiatePurchaseRequest{
		ShowtimeID:    env.showtimeID.String(),
		NumberTickets: 3,
	})
	require.ErrorIs(t, err, ErrValidation)
}
