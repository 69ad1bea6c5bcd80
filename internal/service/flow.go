package service

import "fmt"

// FlowState tracks a checkout attempt from channel selection through
// submission. Error returns the flow to FlowFormValid so the customer
// can retry; success has no outgoing transitions.
type FlowState string

const (
	FlowIdle            FlowState = "idle"
	FlowChannelSelected FlowState = "channel-selected"
	FlowFormValid       FlowState = "form-valid"
	FlowSubmitting      FlowState = "submitting"
	FlowSuccess         FlowState = "success"
	FlowError           FlowState = "error"
)

// CanTransitionTo checks if a flow transition is valid
func (s FlowState) CanTransitionTo(next FlowState) bool {
	switch s {
	case FlowIdle:
		return next == FlowChannelSelected
	case FlowChannelSelected:
		return next == FlowFormValid || next == FlowIdle
	case FlowFormValid:
		return next == FlowSubmitting || next == FlowChannelSelected
	case FlowSubmitting:
		return next == FlowSuccess || next == FlowError
	case FlowError:
		return next == FlowFormValid
	case FlowSuccess:
		return false
	default:
		return false
	}
}

// Flow is one checkout attempt's state machine.
type Flow struct {
	state FlowState
}

// NewFlow starts a flow at idle.
func NewFlow() *Flow {
	return &Flow{state: FlowIdle}
}

// State returns the current state.
func (f *Flow) State() FlowState {
	return f.state
}

// To advances the flow, rejecting illegal transitions.
func (f *Flow) To(next FlowState) error {
	if !f.state.CanTransitionTo(next) {
		return fmt.Errorf("invalid flow transition from %s to %s", f.state, next)
	}
	f.state = next
	return nil
}
