package notification

import "context"

type StubRepo struct {
	Notifications []Notification
	lastId        int
	// FailStore makes Store return an error, for exercising best-effort paths.
	FailStore error
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, n Notification) (int, error) {
	if r.FailStore != nil {
		return 0, r.FailStore
	}
	r.lastId++
	n.Id = r.lastId
	n.UserId = userId
	r.Notifications = append(r.Notifications, n)
	return n.Id, nil
}

func (r *StubRepo) GetAll(_ context.Context, userId int, unreadOnly bool) ([]Notification, error) {
	var result []Notification
	for _, n := range r.Notifications {
		if n.UserId != userId {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *StubRepo) MarkRead(_ context.Context, userId int, notificationId int) (bool, error) {
	for i, n := range r.Notifications {
		if n.Id == notificationId && n.UserId == userId {
			r.Notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) MarkAllRead(_ context.Context, userId int) error {
	for i, n := range r.Notifications {
		if n.UserId == userId {
			r.Notifications[i].IsRead = true
		}
	}
	return nil
}

func (r *StubRepo) UnreadCount(_ context.Context, userId int) (int, error) {
	count := 0
	for _, n := range r.Notifications {
		if n.UserId == userId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, notificationId int) (bool, error) {
	for i, n := range r.Notifications {
		if n.Id == notificationId && n.UserId == userId {
			r.Notifications = append(r.Notifications[:i], r.Notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
