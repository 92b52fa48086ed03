package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/crimealert/beacon/internal/geo"
	"github.com/crimealert/beacon/internal/geocode"
	"github.com/crimealert/beacon/internal/mailer"
	"github.com/crimealert/beacon/internal/match"
	"github.com/crimealert/beacon/internal/metrics"
	"github.com/crimealert/beacon/internal/models"
	"github.com/google/uuid"
)

// ProximityMatcher finds users near an incident point.
type ProximityMatcher interface {
	Match(
		ctx context.Context,
		incident models.Coordinates,
		radiusKm float64,
		excludeUserID int64,
	) ([]models.RecipientCandidate, error)
}

// ZoneMatcher finds users whose alert zones cover an incident point.
type ZoneMatcher interface {
	Match(
		ctx context.Context,
		incident models.Coordinates,
		excludeUserID int64,
	) ([]models.RecipientCandidate, error)
}

// Notifier runs the incident fan-out: it matches recipients through the two
// spatial mechanisms, merges them into a unique set, and dispatches one alert
// email per recipient over a bounded worker pool. Nothing it does can fail the
// report submission that triggered it; its results go to logs and metrics only.
type Notifier struct {
	log         *slog.Logger     // Logger for logging service activities
	geoMatcher  ProximityMatcher // Fixed-radius nearby-user matching
	zoneMatcher ZoneMatcher      // User-authored alert-zone matching
	gateway     mailer.Gateway   // Fallible external delivery channel
	composer    *mailer.Composer // Renders alert messages
	geocoder    geocode.Provider // Optional display-address enrichment, may be nil
	gatewayName string           // Name of the gateway for metrics labeling
	metrics     *metrics.Metrics // Metrics for tracking service performance
	numWorkers  int              // Number of concurrent workers for dispatching
	radiusKm    float64          // Discovery radius for proximity matching
	timeout     time.Duration    // Overall deadline for one fan-out run
}

// NewNotifier creates a new instance of Notifier. It takes a logger, the two
// matchers, a mail gateway with its name for metrics, a message composer, an
// optional reverse geocoder, metrics, the number of dispatch workers, the
// discovery radius in kilometers, and the per-run deadline. It returns a
// pointer to the newly created Notifier.
func NewNotifier(
	log *slog.Logger,
	geoMatcher ProximityMatcher,
	zoneMatcher ZoneMatcher,
	gateway mailer.Gateway,
	gatewayName string,
	composer *mailer.Composer,
	geocoder geocode.Provider,
	metrics *metrics.Metrics,
	numWorkers int,
	radiusKm float64,
	timeout time.Duration,
) *Notifier {
	return &Notifier{
		log:         log,
		geoMatcher:  geoMatcher,
		zoneMatcher: zoneMatcher,
		gateway:     gateway,
		gatewayName: gatewayName,
		composer:    composer,
		geocoder:    geocoder,
		metrics:     metrics,
		numWorkers:  numWorkers,
		radiusKm:    radiusKm,
		timeout:     timeout,
	}
}

// Notify runs one fan-out for a submitted report and returns the outcome of
// every delivery attempt. The returned outcomes are observational: callers
// must not treat a failed send, or an empty result, as an error. The run is
// bounded by the configured deadline; recipients still pending when it expires
// are recorded as failed.
func (n *Notifier) Notify(ctx context.Context, report models.ReportSubmitted) []models.DispatchOutcome {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	log := n.log.With("report_id", report.ReportID, "run_id", uuid.NewString())

	incident := report.Location()
	if err := geo.ValidateCoordinates(incident); err != nil {
		log.WarnContext(ctx, "Report has invalid coordinates, skipping fan-out", "error", err)
		return nil
	}

	nearby, zoned := n.matchRecipients(ctx, log, incident, report.ReporterID)

	recipients := match.Merge(nearby, zoned)
	n.metrics.FanoutRecipients.Observe(float64(len(recipients)))

	if len(recipients) == 0 {
		log.InfoContext(ctx, "No recipients matched, nothing to dispatch")
		return nil
	}

	log.InfoContext(ctx, "Recipients matched. Starting dispatch worker pool.",
		"recipients", len(recipients), "num_workers", n.numWorkers)

	outcomes := n.dispatch(ctx, log, report, recipients)

	for _, outcome := range outcomes {
		n.metrics.NotificationsTotal.WithLabelValues(string(outcome.Result)).Inc()
		if outcome.Result == models.DispatchSent {
			log.InfoContext(ctx, "Notification dispatched",
				"recipient", outcome.RecipientEmail, "stage", "dispatch", "outcome", outcome.Result)
		} else {
			log.ErrorContext(ctx, "Notification failed",
				"recipient", outcome.RecipientEmail, "stage", "dispatch", "outcome", outcome.Result,
				"error", outcome.Error)
		}
	}

	return outcomes
}

// matchRecipients runs both matchers concurrently. A matcher failure yields an
// empty candidate list for that mechanism; the run continues with the other.
func (n *Notifier) matchRecipients(
	ctx context.Context,
	log *slog.Logger,
	incident models.Coordinates,
	reporterID int64,
) (nearby, zoned []models.RecipientCandidate) {
	var (
		wgr       sync.WaitGroup
		nearbyErr error
		zonedErr  error
	)

	wgr.Add(2)
	go func() {
		defer wgr.Done()
		nearby, nearbyErr = n.geoMatcher.Match(ctx, incident, n.radiusKm, reporterID)
	}()
	go func() {
		defer wgr.Done()
		zoned, zonedErr = n.zoneMatcher.Match(ctx, incident, reporterID)
	}()
	wgr.Wait()

	if nearbyErr != nil {
		log.ErrorContext(ctx, "Proximity matching failed",
			"stage", "geo_matcher", "outcome", "query_failure", "error", nearbyErr)
		n.metrics.MatcherQueryFailures.WithLabelValues("geo").Inc()
		nearby = nil
	}
	if zonedErr != nil {
		log.ErrorContext(ctx, "Zone matching failed",
			"stage", "zone_matcher", "outcome", "query_failure", "error", zonedErr)
		n.metrics.MatcherQueryFailures.WithLabelValues("zone").Inc()
		zoned = nil
	}

	return nearby, zoned
}

// dispatch fans the recipient set out over the worker pool and collects one
// outcome per recipient.
func (n *Notifier) dispatch(
	ctx context.Context,
	log *slog.Logger,
	report models.ReportSubmitted,
	recipients []models.RecipientCandidate,
) []models.DispatchOutcome {
	hint := n.locationHint(ctx, log, report.Location())

	jobs := make(chan models.RecipientCandidate, len(recipients))
	results := make(chan models.DispatchOutcome, len(recipients))

	workers := n.numWorkers
	if workers > len(recipients) {
		workers = len(recipients)
	}

	var wgr sync.WaitGroup
	for i := 1; i <= workers; i++ {
		wgr.Add(1)
		go n.worker(ctx, i, &wgr, report, hint, jobs, results)
	}

	for _, recipient := range recipients {
		jobs <- recipient
	}
	close(jobs)

	wgr.Wait()
	close(results)

	outcomes := make([]models.DispatchOutcome, 0, len(recipients))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}

	log.InfoContext(ctx, "Dispatch batch finished", "outcomes", len(outcomes))

	return outcomes
}

// worker sends alerts for recipients from the jobs channel. A failed send is
// recorded in that recipient's outcome and never stops the loop; once the run
// deadline has expired, remaining recipients are abandoned with a timeout
// outcome instead of being attempted.
func (n *Notifier) worker(
	ctx context.Context,
	idx int,
	wgr *sync.WaitGroup,
	report models.ReportSubmitted,
	hint string,
	jobs <-chan models.RecipientCandidate,
	results chan<- models.DispatchOutcome,
) {
	defer wgr.Done()
	for recipient := range jobs {
		n.metrics.ActiveWorkers.Inc()
		n.log.DebugContext(ctx, "Dispatching notification", "worker", idx, "recipient", recipient.Email)

		outcome := models.DispatchOutcome{
			ReportID:       report.ReportID,
			RecipientEmail: recipient.Email,
			Result:         models.DispatchSent,
		}

		switch {
		case ctx.Err() != nil:
			outcome.Result = models.DispatchFailed
			outcome.Error = "fan-out deadline exceeded"
		default:
			if err := n.send(ctx, report, recipient, hint); err != nil {
				outcome.Result = models.DispatchFailed
				outcome.Error = err.Error()
			}
		}

		results <- outcome
		n.metrics.ActiveWorkers.Dec()
	}
}

func (n *Notifier) send(
	ctx context.Context,
	report models.ReportSubmitted,
	recipient models.RecipientCandidate,
	hint string,
) error {
	msg, err := n.composer.Compose(report, recipient, hint)
	if err != nil {
		return err
	}

	startTime := time.Now()
	err = n.gateway.Send(ctx, msg)
	n.metrics.SendSeconds.WithLabelValues(n.gatewayName).Observe(time.Since(startTime).Seconds())

	return err
}

// locationHint resolves a display address for the incident point. The address
// only enriches the alert body; any failure downgrades to an empty hint.
func (n *Notifier) locationHint(ctx context.Context, log *slog.Logger, point models.Coordinates) string {
	if n.geocoder == nil {
		return ""
	}

	address, err := n.geocoder.ReverseGeocode(ctx, point)
	if err != nil {
		log.DebugContext(ctx, "Could not resolve display address for incident", "error", err)
		return ""
	}

	return address
}
