package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/gateway"
	"movie-booking/pkg/utils"
)

// memStore is an in-memory stand-in for the database. It mirrors the
// constraints the services rely on: unique emails, unique showtime slots
// and unique confirmed seats per screening.
type memStore struct {
	mu sync.Mutex

	users     []entity.User
	movies    []entity.Movie
	showtimes []entity.Showtime
	bookings  []entity.Booking
	seats     []entity.BookingSeat
	payments  []entity.Payment
	orders    []entity.Order
	nextID    int64

	failSeatInsert bool
}

type memSnapshot struct {
	users     []entity.User
	movies    []entity.Movie
	showtimes []entity.Showtime
	bookings  []entity.Booking
	seats     []entity.BookingSeat
	payments  []entity.Payment
	orders    []entity.Order
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memSnapshot{
		users:     append([]entity.User(nil), m.users...),
		movies:    append([]entity.Movie(nil), m.movies...),
		showtimes: append([]entity.Showtime(nil), m.showtimes...),
		bookings:  append([]entity.Booking(nil), m.bookings...),
		seats:     append([]entity.BookingSeat(nil), m.seats...),
		payments:  append([]entity.Payment(nil), m.payments...),
		orders:    append([]entity.Order(nil), m.orders...),
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users, m.movies, m.showtimes = s.users, s.movies, s.showtimes
	m.bookings, m.seats, m.payments, m.orders = s.bookings, s.seats, s.payments, s.orders
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:        memUsers{m},
		Movie:       memMovies{m},
		Showtime:    memShowtimes{m},
		Booking:     memBookings{m},
		BookingSeat: memBookingSeats{m},
		Payment:     memPayments{m},
		Order:       memOrders{m},
		Tx:          &memTx{store: m},
	}
}

// seed helpers

func (m *memStore) addUser(name, email string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := entity.User{Name: name, Email: email}
	u.ID = m.id()
	m.users = append(m.users, u)
	return u.ID
}

func (m *memStore) addMovie(name string, screen int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv := entity.Movie{MovieName: name, ScreenNo: screen}
	mv.ID = m.id()
	m.movies = append(m.movies, mv)
	return mv.ID
}

func (m *memStore) addShowtime(slot string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := entity.Showtime{TimeSlot: slot}
	st.ID = m.id()
	m.showtimes = append(m.showtimes, st)
	return st.ID
}

func (m *memStore) booking(id int64) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b
		}
	}
	return entity.Booking{}
}

func (m *memStore) ledger(bookingID int64) []entity.LedgerStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	var statuses []entity.LedgerStatus
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			statuses = append(statuses, p.Status)
		}
	}
	return statuses
}

// transactor

type memTxKey struct{}

type memTx struct {
	store *memStore
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// users

type memUsers struct{ m *memStore }

func (r memUsers) InsertIfAbsent(_ context.Context, user *entity.User) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return false, nil
		}
	}
	user.ID = r.m.id()
	user.CreatedAt = time.Now()
	r.m.users = append(r.m.users, *user)
	return true, nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// movies

type memMovies struct{ m *memStore }

func (r memMovies) Create(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movie.ID = r.m.id()
	movie.CreatedAt = time.Now()
	r.m.movies = append(r.m.movies, *movie)
	return nil
}

func (r memMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, mv := range r.m.movies {
		if mv.ID == id {
			return &mv, nil
		}
	}
	return nil, nil
}

func (r memMovies) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movies := make([]*entity.Movie, len(r.m.movies))
	for i := range r.m.movies {
		mv := r.m.movies[i]
		movies[i] = &mv
	}
	return movies, nil
}

// showtimes

type memShowtimes struct{ m *memStore }

func (r memShowtimes) Create(_ context.Context, showtime *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, st := range r.m.showtimes {
		if st.TimeSlot == showtime.TimeSlot {
			return fmt.Errorf("create showtime: %w", repository.ErrDuplicate)
		}
	}
	showtime.ID = r.m.id()
	showtime.CreatedAt = time.Now()
	r.m.showtimes = append(r.m.showtimes, *showtime)
	return nil
}

func (r memShowtimes) FindByID(_ context.Context, id int64) (*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, st := range r.m.showtimes {
		if st.ID == id {
			return &st, nil
		}
	}
	return nil, nil
}

func (r memShowtimes) FindAll(_ context.Context) ([]*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	showtimes := make([]*entity.Showtime, len(r.m.showtimes))
	for i := range r.m.showtimes {
		st := r.m.showtimes[i]
		showtimes[i] = &st
	}
	return showtimes, nil
}

// bookings

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, booking *entity.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	booking.ID = r.m.id()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.m.bookings = append(r.m.bookings, *booking)
	return nil
}

func (r memBookings) FindByID(_ context.Context, id int64) (*entity.Booking, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (r memBookings) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r memBookings) UpdateStatus(_ context.Context, bookingID int64, from, to entity.PaymentStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.bookings {
		if r.m.bookings[i].ID == bookingID && r.m.bookings[i].PaymentStatus == from {
			r.m.bookings[i].PaymentStatus = to
			return nil
		}
	}
	return fmt.Errorf("booking %d is not %s: %w", bookingID, from, repository.ErrStatusChanged)
}

// booking seats

type memBookingSeats struct{ m *memStore }

func (r memBookingSeats) CreateBatch(_ context.Context, booking *entity.Booking, seatNos []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, seat := range seatNos {
		if r.m.failSeatInsert && i == len(seatNos)-1 {
			return errors.New("seat insert failed")
		}
		bs := entity.BookingSeat{
			BookingID:  booking.ID,
			MovieID:    booking.MovieID,
			ShowDate:   booking.ShowDate,
			TimeSlotID: booking.TimeSlotID,
			SeatNo:     seat,
		}
		bs.ID = r.m.id()
		r.m.seats = append(r.m.seats, bs)
	}
	return nil
}

func (r memBookingSeats) FindSeatNosByBookingID(_ context.Context, bookingID int64) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seats := make([]string, 0)
	for _, bs := range r.m.seats {
		if bs.BookingID == bookingID {
			seats = append(seats, bs.SeatNo)
		}
	}
	return seats, nil
}

func (r memBookingSeats) FindConfirmedSeatNos(_ context.Context, movieID int64, showDate time.Time, timeSlotID int64) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	paid := make(map[int64]bool)
	for _, b := range r.m.bookings {
		if b.PaymentStatus == entity.PaymentStatusSuccess {
			paid[b.ID] = true
		}
	}
	seats := make([]string, 0)
	for _, bs := range r.m.seats {
		if paid[bs.BookingID] && bs.MovieID == movieID && bs.ShowDate.Equal(showDate) && bs.TimeSlotID == timeSlotID {
			seats = append(seats, bs.SeatNo)
		}
	}
	return seats, nil
}

func (r memBookingSeats) ConfirmByBookingID(_ context.Context, bookingID int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.seats {
		bs := r.m.seats[i]
		if bs.BookingID != bookingID {
			continue
		}
		for _, other := range r.m.seats {
			if other.Confirmed && other.BookingID != bookingID && other.SeatNo == bs.SeatNo &&
				other.MovieID == bs.MovieID && other.ShowDate.Equal(bs.ShowDate) && other.TimeSlotID == bs.TimeSlotID {
				return fmt.Errorf("confirm seats: %w", repository.ErrDuplicate)
			}
		}
		r.m.seats[i].Confirmed = true
	}
	return nil
}

// payments

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, payment *entity.Payment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	payment.ID = r.m.id()
	payment.CreatedAt = time.Now()
	r.m.payments = append(r.m.payments, *payment)
	return nil
}

func (r memPayments) FindByBookingID(_ context.Context, bookingID int64) ([]*entity.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	payments := make([]*entity.Payment, 0)
	for i := range r.m.payments {
		if r.m.payments[i].BookingID == bookingID {
			p := r.m.payments[i]
			payments = append(payments, &p)
		}
	}
	return payments, nil
}

// orders

type memOrders struct{ m *memStore }

func (r memOrders) Create(_ context.Context, order *entity.Order) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	order.ID = r.m.id()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.m.orders = append(r.m.orders, *order)
	return nil
}

func (r memOrders) FindByID(_ context.Context, id int64) (*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, nil
}

func (r memOrders) UpdateStatus(_ context.Context, orderID int64, from, to entity.OrderStatus, gatewayOrderID *string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.orders {
		if r.m.orders[i].ID == orderID && r.m.orders[i].Status == from {
			r.m.orders[i].Status = to
			if gatewayOrderID != nil {
				r.m.orders[i].GatewayOrderID = gatewayOrderID
			}
			return nil
		}
	}
	return fmt.Errorf("order %d is not %s: %w", orderID, from, repository.ErrStatusChanged)
}

// gateway

const testSecret = "test_secret"

type fakeGateway struct {
	mu       sync.Mutex
	requests []gateway.OrderRequest
	err      error

	// beforeVerify runs inside VerifySignature, before the result is
	// returned, to interleave a second request.
	beforeVerify func()
}

func (g *fakeGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &gateway.Order{
		ID:       fmt.Sprintf("order_%d", len(g.requests)),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) error {
	if hook := g.beforeVerify; hook != nil {
		g.beforeVerify = nil
		hook()
	}
	if gateway.Sign(orderID, paymentID, testSecret) != signature {
		return gateway.ErrInvalidSignature
	}
	return nil
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

func (g *fakeGateway) Currency() string { return "INR" }

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Timezone: "UTC"},
		Booking: utils.BookingConfig{
			SeatRows:     5,
			SeatColumns:  6,
			ShowDuration: 2*time.Hour + 15*time.Minute,
		},
	}
}
