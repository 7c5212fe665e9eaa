package complaint

import (
	"context"
	"sync"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

var _ complaintAPI = &complaintAPIMock{}

type complaintAPIMock struct {
	ListComplaintsFunc    func(ctx context.Context, role domain.Role) ([]domain.Complaint, error)
	MarkComplaintSeenFunc func(ctx context.Context, id int64) error
	ReplyComplaintFunc    func(ctx context.Context, id int64, role domain.Role, response string) error
	SubmitComplaintFunc   func(ctx context.Context, s domain.ComplaintSubmission) error

	calls struct {
		ListComplaints []struct {
			Ctx  context.Context
			Role domain.Role
		}
		MarkComplaintSeen []struct {
			Ctx context.Context
			ID  int64
		}
		ReplyComplaint []struct {
			Ctx      context.Context
			ID       int64
			Role     domain.Role
			Response string
		}
		SubmitComplaint []struct {
			Ctx context.Context
			S   domain.ComplaintSubmission
		}
	}
	lockListComplaints    sync.RWMutex
	lockMarkComplaintSeen sync.RWMutex
	lockReplyComplaint    sync.RWMutex
	lockSubmitComplaint   sync.RWMutex
}

func (mock *complaintAPIMock) ListComplaints(ctx context.Context, role domain.Role) ([]domain.Complaint, error) {
	if mock.ListComplaintsFunc == nil {
		panic("complaintAPIMock.ListComplaintsFunc: method is nil but complaintAPI.ListComplaints was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Role domain.Role
	}{Ctx: ctx, Role: role}
	mock.lockListComplaints.Lock()
	mock.calls.ListComplaints = append(mock.calls.ListComplaints, callInfo)
	mock.lockListComplaints.Unlock()
	return mock.ListComplaintsFunc(ctx, role)
}

func (mock *complaintAPIMock) ListComplaintsCalls() []struct {
	Ctx  context.Context
	Role domain.Role
} {
	mock.lockListComplaints.RLock()
	calls := mock.calls.ListComplaints
	mock.lockListComplaints.RUnlock()
	return calls
}

func (mock *complaintAPIMock) MarkComplaintSeen(ctx context.Context, id int64) error {
	if mock.MarkComplaintSeenFunc == nil {
		panic("complaintAPIMock.MarkComplaintSeenFunc: method is nil but complaintAPI.MarkComplaintSeen was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{Ctx: ctx, ID: id}
	mock.lockMarkComplaintSeen.Lock()
	mock.calls.MarkComplaintSeen = append(mock.calls.MarkComplaintSeen, callInfo)
	mock.lockMarkComplaintSeen.Unlock()
	return mock.MarkComplaintSeenFunc(ctx, id)
}

func (mock *complaintAPIMock) MarkComplaintSeenCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	mock.lockMarkComplaintSeen.RLock()
	calls := mock.calls.MarkComplaintSeen
	mock.lockMarkComplaintSeen.RUnlock()
	return calls
}

func (mock *complaintAPIMock) ReplyComplaint(ctx context.Context, id int64, role domain.Role, response string) error {
	if mock.ReplyComplaintFunc == nil {
		panic("complaintAPIMock.ReplyComplaintFunc: method is nil but complaintAPI.ReplyComplaint was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       int64
		Role     domain.Role
		Response string
	}{Ctx: ctx, ID: id, Role: role, Response: response}
	mock.lockReplyComplaint.Lock()
	mock.calls.ReplyComplaint = append(mock.calls.ReplyComplaint, callInfo)
	mock.lockReplyComplaint.Unlock()
	return mock.ReplyComplaintFunc(ctx, id, role, response)
}

func (mock *complaintAPIMock) ReplyComplaintCalls() []struct {
	Ctx      context.Context
	ID       int64
	Role     domain.Role
	Response string
} {
	mock.lockReplyComplaint.RLock()
	calls := mock.calls.ReplyComplaint
	mock.lockReplyComplaint.RUnlock()
	return calls
}

func (mock *complaintAPIMock) SubmitComplaint(ctx context.Context, s domain.ComplaintSubmission) error {
	if mock.SubmitComplaintFunc == nil {
		panic("complaintAPIMock.SubmitComplaintFunc: method is nil but complaintAPI.SubmitComplaint was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.ComplaintSubmission
	}{Ctx: ctx, S: s}
	mock.lockSubmitComplaint.Lock()
	mock.calls.SubmitComplaint = append(mock.calls.SubmitComplaint, callInfo)
	mock.lockSubmitComplaint.Unlock()
	return mock.SubmitComplaintFunc(ctx, s)
}

func (mock *complaintAPIMock) SubmitComplaintCalls() []struct {
	Ctx context.Context
	S   domain.ComplaintSubmission
} {
	mock.lockSubmitComplaint.RLock()
	calls := mock.calls.SubmitComplaint
	mock.lockSubmitComplaint.RUnlock()
	return calls
}
