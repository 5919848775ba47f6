package waitlist

import (
	context "context"
	reflect "reflect"

	models "turn2law_web/models"

	gomock "go.uber.org/mock/gomock"
)

// MockSubmitter is a mock of Submitter interface.
type MockSubmitter struct {
	ctrl     *gomock.Controller
	recorder *MockSubmitterMockRecorder
	isgomock struct{}
}

// MockSubmitterMockRecorder is the mock recorder for MockSubmitter.
type MockSubmitterMockRecorder struct {
	mock *MockSubmitter
}

// NewMockSubmitter creates a new mock instance.
func NewMockSubmitter(ctrl *gomock.Controller) *MockSubmitter {
	mock := &MockSubmitter{ctrl: ctrl}
	mock.recorder = &MockSubmitterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSubmitter) EXPECT() *MockSubmitterMockRecorder {
	return m.recorder
}

// Submit mocks base method.
func (m *MockSubmitter) Submit(ctx context.Context, s models.WaitlistSubmission) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, s)
	ret0, _ := ret[0].(error)
	return ret0
}

// Submit indicates an expected call of Submit.
func (mr *MockSubmitterMockRecorder) Submit(ctx, s any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockSubmitter)(nil).Submit), ctx, s)
}
