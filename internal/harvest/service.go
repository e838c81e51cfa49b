package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stationone-hq/stationone-menu/internal/logger"
	"github.com/stationone-hq/stationone-menu/pkg/publishers"
)

// Result summarizes one harvest pass.
type Result struct {
	Items     int `json:"items"`
	Published int `json:"published"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// Service walks a deployment and publishes items that are new or changed
// since they were last published.
type Service struct {
	deploymentID string
	walker       *Walker
	images       Source
	publisher    EventPublisher
	store        ChangeStore
	log          logger.Logger
}

// NewService wires a harvest service for one deployment. A nil store
// publishes every item on every pass.
func NewService(deploymentID string, src Source, delay time.Duration, pub EventPublisher, store ChangeStore, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		deploymentID: deploymentID,
		walker:       NewWalker(src, delay, log),
		images:       src,
		publisher:    pub,
		store:        store,
		log:          log,
	}
}

// Run executes a single pass. Items from branches that failed to load are
// skipped; the branch errors are returned alongside the result.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if s == nil || s.walker == nil || s.publisher == nil {
		return Result{}, fmt.Errorf("harvest service is not initialized")
	}

	snap, walkErr := s.walker.Walk(ctx)
	if walkErr != nil {
		s.log.WarnObj("menu walk incomplete", "walk_error", map[string]any{
			"deployment_id": s.deploymentID,
			"error":         walkErr.Error(),
		})
		if len(snap.Categories) == 0 && len(snap.Offers) == 0 {
			return Result{}, walkErr
		}
	}

	events, err := Events(s.deploymentID, snap, s.images)
	if err != nil {
		return Result{}, errors.Join(walkErr, err)
	}

	res := Result{Items: len(events)}
	errs := []error{walkErr}
	for _, evt := range events {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		fp := Fingerprint(evt)
		if !s.changed(evt, fp) {
			res.Unchanged++
			continue
		}

		if _, err := s.publisher.Publish(ctx, evt); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("publish %s: %w", evt.Key(), err))
			continue
		}
		res.Published++

		if s.store != nil {
			if err := s.store.Remember(evt.Key(), fp); err != nil {
				s.log.WarnObj("failed to remember published item", "store_error", map[string]any{
					"item":  evt.Key(),
					"error": err.Error(),
				})
			}
		}
	}

	s.log.InfoObj("menu harvest completed", "harvest_result", map[string]any{
		"deployment_id": s.deploymentID,
		"items":         res.Items,
		"published":     res.Published,
		"unchanged":     res.Unchanged,
		"failed":        res.Failed,
	})
	return res, errors.Join(errs...)
}

// changed reports whether evt must be published. Store lookup failures
// publish the item rather than risk dropping it.
func (s *Service) changed(evt publishers.Event, fp string) bool {
	if s.store == nil {
		return true
	}
	changed, err := s.store.Changed(evt.Key(), fp)
	if err != nil {
		s.log.WarnObj("change lookup failed; publishing anyway", "store_error", map[string]any{
			"item":  evt.Key(),
			"error": err.Error(),
		})
		return true
	}
	return changed
}
