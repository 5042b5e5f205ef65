package usecase

import (
	"context"
	"strings"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogService interface {
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	ListShowtimes(ctx context.Context, req *request.ShowtimeQuery) ([]response.ShowtimeResponse, error)
	AddMovie(ctx context.Context, req *request.AddMovieRequest) (*response.AddMovieResponse, error)
	AddShowtime(ctx context.Context, req *request.AddShowtimeRequest) (*response.AddShowtimeResponse, error)
}

type catalogService struct {
	repo         *repository.Repository
	location     *time.Location
	showDuration time.Duration
	now          func() time.Time
	log          *zap.Logger
}

func NewCatalogService(repo *repository.Repository, config *utils.Config, log *zap.Logger) CatalogService {
	location, err := config.App.Location()
	if err != nil {
		location = time.Local
	}

	return &catalogService{
		repo:         repo,
		location:     location,
		showDuration: config.Booking.ShowDuration,
		now:          time.Now,
		log:          log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, internalError("list movies", err)
	}

	result := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		result[i] = response.MovieToResponse(movie)
	}

	return result, nil
}

// ListShowtimes returns showtimes by time of day. Only when the date asked
// for is today does it hide slots whose screening has already ended.
func (s *catalogService) ListShowtimes(ctx context.Context, req *request.ShowtimeQuery) ([]response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("Validation failed", errs)
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx)
	if err != nil {
		return nil, internalError("list showtimes", err)
	}

	now := s.now().In(s.location)
	if req.Date == "" || req.Date != now.Format(DateLayout) {
		return showtimesToResponse(SortShowtimes(showtimes)), nil
	}

	current := sinceMidnight(now)
	if req.CurrentTime != "" {
		current, err = ParseClock(req.CurrentTime)
		if err != nil {
			return nil, validationError("Validation failed", map[string]string{
				"current_time": "Use HH:MM, HH:MM:SS or hh:mm AM/PM",
			})
		}
	}

	kept, unparsed := UpcomingShowtimes(showtimes, current, s.showDuration)
	for _, st := range unparsed {
		s.log.Warn("Stored showtime has an unreadable time slot",
			zap.Int64("showtime_id", st.ID),
			zap.String("time_slot", st.TimeSlot),
		)
	}

	return showtimesToResponse(kept), nil
}

func (s *catalogService) AddMovie(ctx context.Context, req *request.AddMovieRequest) (*response.AddMovieResponse, error) {
	req.MovieName = strings.TrimSpace(req.MovieName)
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add movie validation failed", zap.Any("errors", errs))
		return nil, validationError("Validation failed", errs)
	}

	movie := &entity.Movie{
		ScreenNo:   req.ScreenNo,
		MovieName:  req.MovieName,
		PosterURL:  req.PosterURL,
		TrailerURL: req.TrailerURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, storageError("add movie", err)
	}

	s.log.Info("Movie added",
		zap.Int64("movie_id", movie.ID),
		zap.String("movie_name", movie.MovieName),
		zap.Int("screen_no", movie.ScreenNo),
	)

	return &response.AddMovieResponse{
		Status: utils.StatusSuccess,
		Movie:  response.MovieToResponse(movie),
	}, nil
}

// AddShowtime stores the slot in its canonical "hh:mm AM" form, so "1:00 PM"
// and "01:00 pm" collide as duplicates.
func (s *catalogService) AddShowtime(ctx context.Context, req *request.AddShowtimeRequest) (*response.AddShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError("Validation failed", errs)
	}

	start, err := ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, validationError("Validation failed", map[string]string{
			"time_slot": "Use a 12-hour time such as 10:00 AM",
		})
	}

	showtime := &entity.Showtime{TimeSlot: FormatTimeSlot(start)}
	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, storageError("add showtime "+showtime.TimeSlot, err)
	}

	s.log.Info("Showtime added",
		zap.Int64("showtime_id", showtime.ID),
		zap.String("time_slot", showtime.TimeSlot),
	)

	return &response.AddShowtimeResponse{
		Status:   utils.StatusSuccess,
		Showtime: response.ShowtimeToResponse(showtime),
	}, nil
}

func showtimesToResponse(showtimes []*entity.Showtime) []response.ShowtimeResponse {
	result := make([]response.ShowtimeResponse, len(showtimes))
	for i, st := range showtimes {
		result[i] = response.ShowtimeToResponse(st)
	}
	return result
}
