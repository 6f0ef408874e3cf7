package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
)

const tracerName = "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability/service"

// Service decorates the pets port with spans, structured logs and meters.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// SearchPets runs a search and records its outcome and result size.
func (s *Service) SearchPets(ctx context.Context, input pettypes.SearchPetsInput) (*pettypes.SearchPage, error) {
	ctx, span := s.tracer.Start(ctx, "Service.SearchPets", trace.WithAttributes(searchAttributes(input)...))
	defer span.End()

	page, err := s.inner.SearchPets(ctx, input)
	if err != nil {
		if errors.Is(err, application.ErrInvalidInput) {
			s.metrics.recordSearch(ctx, "invalid")
			s.metrics.recordValidationFailure(ctx)
		} else {
			s.metrics.recordSearch(ctx, "error")
		}
		return nil, s.handleError(ctx, span, err, "search failed")
	}
	s.metrics.recordSearch(ctx, "ok")
	s.metrics.recordResults(ctx, len(page.Items))
	span.SetAttributes(
		attribute.Int64("search.total_count", page.TotalCount),
		attribute.Int("search.result.count", len(page.Items)),
	)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "search served",
		slog.Int("page", page.Page),
		slog.Int("page_size", page.PageSize),
		slog.Int64("total_count", page.TotalCount),
		slog.Int("results", len(page.Items)),
	)
	return page, nil
}

// CreateListing stores a new listing.
func (s *Service) CreateListing(ctx context.Context, input pettypes.CreateListingInput) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "Service.CreateListing", trace.WithAttributes(
		attribute.Int64("listing.owner_id", input.OwnerID),
		attribute.Bool("listing.idempotent", input.IdempotencyKey != ""),
	))
	defer span.End()

	pet, err := s.inner.CreateListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create listing", slog.Int64("owner_id", input.OwnerID))
	}
	s.metrics.recordCreated(ctx, pet.Species.Name)
	span.SetAttributes(attribute.Int64("pet.id", pet.ID))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "listing created", slog.Int64("pet.id", pet.ID), slog.String("species", pet.Species.Name))
	return pet, nil
}

// GetListing loads one listing.
func (s *Service) GetListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "Service.GetListing", trace.WithAttributes(attribute.Int64("pet.id", input.ID)))
	defer span.End()

	pet, err := s.inner.GetListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load listing", slog.Int64("pet.id", input.ID))
	}
	return pet, nil
}

// AdoptListing marks a listing adopted.
func (s *Service) AdoptListing(ctx context.Context, input pettypes.ListingIdentifier) (*domain.Pet, error) {
	ctx, span := s.tracer.Start(ctx, "Service.AdoptListing", trace.WithAttributes(attribute.Int64("pet.id", input.ID)))
	defer span.End()

	pet, err := s.inner.AdoptListing(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adopt listing", slog.Int64("pet.id", input.ID))
	}
	s.metrics.recordAdopted(ctx)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "listing adopted", slog.Int64("pet.id", pet.ID))
	return pet, nil
}

// ListTags returns the tag catalog.
func (s *Service) ListTags(ctx context.Context, input pettypes.ListTagsInput) ([]domain.Tag, error) {
	ctx, span := s.tracer.Start(ctx, "Service.ListTags", trace.WithAttributes(attribute.String("tag.category", input.Category)))
	defer span.End()

	tags, err := s.inner.ListTags(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list tags")
	}
	span.SetAttributes(attribute.Int("tag.result.count", len(tags)))
	return tags, nil
}

// handleError marks the span failed. Caller mistakes log at warn, the rest at error.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	level := slog.LevelError
	if isClientError(err) {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func isClientError(err error) bool {
	return errors.Is(err, application.ErrInvalidInput) ||
		errors.Is(err, ports.ErrNotFound) ||
		errors.Is(err, ports.ErrIdempotencyConflict)
}

func searchAttributes(input pettypes.SearchPetsInput) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 8)
	for key, value := range map[string]string{
		"search.species": input.Species,
		"search.state":   input.State,
		"search.gender":  input.Gender,
		"search.size":    input.Size,
		"search.age":     input.Age,
		"search.posted":  input.Posted,
		"search.colors":  input.Colors,
	} {
		if value != "" {
			attrs = append(attrs, attribute.String(key, value))
		}
	}
	if input.Page != nil {
		attrs = append(attrs, attribute.Int("search.page", *input.Page))
	}
	return attrs
}

type serviceMetrics struct {
	searchRequests     metric.Int64Counter
	validationFailures metric.Int64Counter
	searchResults      metric.Int64Histogram
	listingsCreated    metric.Int64Counter
	listingsAdopted    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searchRequests, _ := m.Int64Counter("pets.search.requests", metric.WithDescription("Search requests by outcome"))
	validationFailures, _ := m.Int64Counter("pets.search.validation_failures", metric.WithDescription("Searches rejected for invalid parameters"))
	searchResults, _ := m.Int64Histogram("pets.search.results", metric.WithDescription("Items returned per search page"))
	listingsCreated, _ := m.Int64Counter("pets.listings.created", metric.WithDescription("Listings created"))
	listingsAdopted, _ := m.Int64Counter("pets.listings.adopted", metric.WithDescription("Listings adopted"))
	return serviceMetrics{
		searchRequests:     searchRequests,
		validationFailures: validationFailures,
		searchResults:      searchResults,
		listingsCreated:    listingsCreated,
		listingsAdopted:    listingsAdopted,
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context, outcome string) {
	addCounter(ctx, m.searchRequests, attribute.String("outcome", outcome))
}

func (m serviceMetrics) recordValidationFailure(ctx context.Context) {
	addCounter(ctx, m.validationFailures)
}

func (m serviceMetrics) recordResults(ctx context.Context, n int) {
	if m.searchResults == nil {
		return
	}
	m.searchResults.Record(ctx, int64(n))
}

func (m serviceMetrics) recordCreated(ctx context.Context, species string) {
	addCounter(ctx, m.listingsCreated, attribute.String("species", species))
}

func (m serviceMetrics) recordAdopted(ctx context.Context) {
	addCounter(ctx, m.listingsAdopted)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
