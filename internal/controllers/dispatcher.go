package controllers

import (
	"context"
	"encoding/json"

	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
)

// Dispatcher routes each feature to its controller.
type Dispatcher struct {
	controllers map[models.Feature]Controller
}

func NewDispatcher(deps *Deps) *Dispatcher {
	return NewDispatcherWith(
		NewTutorController(deps),
		NewDocumentController(deps),
		NewImageController(deps),
		NewAudioController(deps),
		NewVideoController(deps),
		NewQuizController(deps),
		NewConceptMapController(deps),
	)
}

func NewDispatcherWith(cs ...Controller) *Dispatcher {
	d := &Dispatcher{controllers: make(map[models.Feature]Controller, len(cs))}
	for _, c := range cs {
		d.controllers[c.Feature()] = c
	}
	return d
}

func (d *Dispatcher) Get(f models.Feature) (Controller, error) {
	c, ok := d.controllers[f]
	if !ok {
		return nil, ErrUnknownFeature
	}
	return c, nil
}

func (d *Dispatcher) Render(sess *session.Session, f models.Feature) (*models.FeatureView, error) {
	c, err := d.Get(f)
	if err != nil {
		return nil, err
	}
	return c.Render(sess), nil
}

// Submit hands the submission to f's controller, which makes f the active
// feature once the request is accepted.
func (d *Dispatcher) Submit(ctx context.Context, sess *session.Session, f models.Feature, sub Submission) (*models.FeatureView, error) {
	c, err := d.Get(f)
	if err != nil {
		return nil, err
	}
	return c.HandleSubmit(ctx, sess, sub)
}

func (d *Dispatcher) Customize(ctx context.Context, sess *session.Session, f models.Feature, req models.CustomizeRequest) (*models.FeatureView, error) {
	c, err := d.Get(f)
	if err != nil {
		return nil, err
	}
	cz, ok := c.(Customizer)
	if !ok {
		return nil, ErrUnsupported
	}
	return cz.HandleCustomize(ctx, sess, req)
}

func (d *Dispatcher) Stream(ctx context.Context, sess *session.Session, f models.Feature, payload json.RawMessage, onChunk func(string) error) (*models.FeatureView, error) {
	c, err := d.Get(f)
	if err != nil {
		return nil, err
	}
	st, ok := c.(Streamer)
	if !ok {
		return nil, ErrUnsupported
	}
	return st.HandleStream(ctx, sess, payload, onChunk)
}
