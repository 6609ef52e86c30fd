package usecase

import (
	"context"
	"sync"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repositories backing the service tests. Only the purchase fake
// takes a lock; the concurrency tests hammer it from multiple goroutines.

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(_ context.Context, _, _ int, _ *string) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, movie := range f.movies {
		movies = append(movies, movie)
	}
	return movies, nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context, _ *string) (int64, error) {
	return int64(len(f.movies)), nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.movies, id)
	return nil
}

type fakeHallRepo struct {
	halls map[uuid.UUID]*entity.Hall
}

func newFakeHallRepo() *fakeHallRepo {
	return &fakeHallRepo{halls: make(map[uuid.UUID]*entity.Hall)}
}

func (f *fakeHallRepo) Create(_ context.Context, hall *entity.Hall) error {
	f.halls[hall.ID] = hall
	return nil
}

func (f *fakeHallRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	return f.halls[id], nil
}

func (f *fakeHallRepo) FindByCinemaID(_ context.Context, cinemaID uuid.UUID) ([]*entity.Hall, error) {
	var halls []*entity.Hall
	for _, hall := range f.halls {
		if hall.CinemaID == cinemaID {
			halls = append(halls, hall)
		}
	}
	return halls, nil
}

func (f *fakeHallRepo) Update(_ context.Context, hall *entity.Hall) error {
	f.halls[hall.ID] = hall
	return nil
}

func (f *fakeHallRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.halls, id)
	return nil
}

type fakeShowtimeRepo struct {
	showtimes map[uuid.UUID]*entity.Showtime
}

func newFakeShowtimeRepo() *fakeShowtimeRepo {
	return &fakeShowtimeRepo{showtimes: make(map[uuid.UUID]*entity.Showtime)}
}

func (f *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	return f.showtimes[id], nil
}

func (f *fakeShowtimeRepo) FindByHallID(_ context.Context, hallID uuid.UUID, excludeID *uuid.UUID) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for _, showtime := range f.showtimes {
		if showtime.HallID != hallID {
			continue
		}
		if excludeID != nil && showtime.ID == *excludeID {
			continue
		}
		showtimes = append(showtimes, showtime)
	}
	return showtimes, nil
}

func (f *fakeShowtimeRepo) FindAll(_ context.Context, _, _ int, _ repository.ShowtimeFilter) ([]*entity.Showtime, error) {
	var showtimes []*entity.Showtime
	for _, showtime := range f.showtimes {
		showtimes = append(showtimes, showtime)
	}
	return showtimes, nil
}

func (f *fakeShowtimeRepo) CountAll(_ context.Context, _ repository.ShowtimeFilter) (int64, error) {
	return int64(len(f.showtimes)), nil
}

func (f *fakeShowtimeRepo) Update(_ context.Context, showtime *entity.Showtime) error {
	f.showtimes[showtime.ID] = showtime
	return nil
}

func (f *fakeShowtimeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.showtimes, id)
	return nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[uuid.UUID]*entity.Purchase

	// beforeUpdate, when set, runs at the top of Update so a test can
	// stall a write at a chosen point
	beforeUpdate func()
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[uuid.UUID]*entity.Purchase)}
}

func (f *fakePurchaseRepo) Create(_ context.Context, purchase *entity.Purchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *purchase
	f.purchases[purchase.ID] = &clone
	return nil
}

func (f *fakePurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	purchase, ok := f.purchases[id]
	if !ok {
		return nil, nil
	}
	clone := *purchase
	return &clone, nil
}

func (f *fakePurchaseRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*entity.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purchases []*entity.Purchase
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			clone := *purchase
			purchases = append(purchases, &clone)
		}
	}
	return purchases, nil
}

func (f *fakePurchaseRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, purchase := range f.purchases {
		if purchase.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (f *fakePurchaseRepo) FindAll(_ context.Context, _, _ int) ([]*entity.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purchases []*entity.Purchase
	for _, purchase := range f.purchases {
		clone := *purchase
		purchases = append(purchases, &clone)
	}
	return purchases, nil
}

func (f *fakePurchaseRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.purchases)), nil
}

func (f *fakePurchaseRepo) FindTakenSeats(_ context.Context, showtimeID uuid.UUID, now time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]struct{})
	var seats []string
	for _, purchase := range f.purchases {
		if purchase.ShowtimeID != showtimeID {
			continue
		}
		if purchase.HoldExpired(now) {
			continue
		}
		for _, seat := range purchase.ChosenSeats {
			if _, dup := seen[seat]; dup {
				continue
			}
			seen[seat] = struct{}{}
			seats = append(seats, seat)
		}
	}
	return seats, nil
}

func (f *fakePurchaseRepo) Update(_ context.Context, purchase *entity.Purchase) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *purchase
	f.purchases[purchase.ID] = &clone
	return nil
}

type fakeSettingRepo struct {
	settings map[string]*entity.Setting
	reads    int
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[string]*entity.Setting)}
}

func (f *fakeSettingRepo) Create(_ context.Context, setting *entity.Setting) error {
	f.settings[setting.Key] = setting
	return nil
}

func (f *fakeSettingRepo) FindByKey(_ context.Context, key string) (*entity.Setting, error) {
	f.reads++
	return f.settings[key], nil
}

func (f *fakeSettingRepo) FindAll(_ context.Context) ([]*entity.Setting, error) {
	var settings []*entity.Setting
	for _, setting := range f.settings {
		settings = append(settings, setting)
	}
	return settings, nil
}

func (f *fakeSettingRepo) Update(_ context.Context, setting *entity.Setting) error {
	f.settings[setting.Key] = setting
	return nil
}

func (f *fakeSettingRepo) Delete(_ context.Context, id uuid.UUID) error {
	for key, setting := range f.settings {
		if setting.ID == id {
			delete(f.settings, key)
		}
	}
	return nil
}
