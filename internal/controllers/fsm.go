package controllers

import (
	"context"
	"log"

	"github.com/qmuntal/stateless"

	"mentora-backend/internal/models"
	"mentora-backend/internal/session"
)

type trigger string

const (
	triggerSubmit    trigger = "submit"
	triggerCustomize trigger = "customize"
	triggerComplete  trigger = "complete"
)

// newMachine builds the idle/processing machine for one feature. Its state
// lives in the session so every request sees the same value.
func newMachine(sess *session.Session, f models.Feature) *stateless.StateMachine {
	m := stateless.NewStateMachineWithExternalStorage(
		func(_ context.Context) (stateless.State, error) {
			return sess.State(f), nil
		},
		func(_ context.Context, s stateless.State) error {
			sess.SetState(f, s.(models.ControllerState))
			return nil
		},
		stateless.FiringImmediate,
	)

	m.Configure(models.StateIdle).
		Permit(triggerSubmit, models.StateProcessing).
		Permit(triggerCustomize, models.StateProcessing)

	m.Configure(models.StateProcessing).
		Permit(triggerComplete, models.StateIdle)

	return m
}

// begin moves f to processing and makes it the active feature. It refuses
// while any feature of the session is processing, so a rejected request
// never touches another request's history.
func begin(ctx context.Context, sess *session.Session, m *stateless.StateMachine, f models.Feature, t trigger) error {
	return sess.Transition(func() error {
		if sess.Processing() {
			return ErrBusy
		}
		ok, err := m.CanFireCtx(ctx, t)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBusy
		}
		sess.SwitchFeature(f)
		return m.FireCtx(ctx, t)
	})
}

func finish(ctx context.Context, sess *session.Session, m *stateless.StateMachine, f models.Feature) {
	ctx = context.WithoutCancel(ctx)
	err := sess.Transition(func() error {
		return m.FireCtx(ctx, triggerComplete)
	})
	if err != nil {
		log.Printf("⚠ Could not return %s to idle: %v", f, err)
	}
}
