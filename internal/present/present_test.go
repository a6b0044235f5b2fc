package present

import (
	"errors"
	"testing"

	"panascoop/internal/models"
	"panascoop/internal/store"
)

type recordingAlerter struct {
	grant  bool
	alerts []models.Notification
	fail   bool
}

func (a *recordingAlerter) RequestPermission() bool { return a.grant }

func (a *recordingAlerter) Alert(n models.Notification) error {
	if a.fail {
		return errors.New("alert failed")
	}
	a.alerts = append(a.alerts, n)
	return nil
}

func setupAdapter(t *testing.T, alerter Alerter) (*store.Store, *Adapter) {
	t.Helper()
	st := store.New(store.NewMemoryStorage(0), nil)
	st.Load("u1")
	return st, New(st, alerter, nil)
}

func TestUnreadCountLive(t *testing.T) {
	st, ad := setupAdapter(t, nil)

	if ad.UnreadCount() != 0 || ad.HasNew() {
		t.Fatal("fresh adapter must report no unread")
	}

	n1, _ := st.Ingest(models.RawEvent{TaskID: "t1"})
	st.Ingest(models.RawEvent{TaskID: "t2"})
	if ad.UnreadCount() != 2 || !ad.HasNew() {
		t.Fatalf("unread = %d, hasNew = %v", ad.UnreadCount(), ad.HasNew())
	}

	// Счётчик не кэшируется: изменение Store видно сразу.
	ad.MarkRead(n1.ID)
	if ad.UnreadCount() != 1 {
		t.Fatalf("unread = %d, want 1", ad.UnreadCount())
	}
}

func TestOpenPanelMarksAllRead(t *testing.T) {
	st, ad := setupAdapter(t, nil)

	st.Ingest(models.RawEvent{TaskID: "t1"})
	st.Ingest(models.RawEvent{TaskID: "t2"})
	st.Ingest(models.RawEvent{TaskID: "t3"})

	if got := ad.OpenPanel(); got != 3 {
		t.Fatalf("marked %d, want 3", got)
	}
	if ad.UnreadCount() != 0 || ad.HasNew() {
		t.Fatal("panel open must zero the unread state")
	}
	if got := ad.OpenPanel(); got != 0 {
		t.Fatalf("second open marked %d, want 0", got)
	}
}

func TestRemoveAndClearDelegate(t *testing.T) {
	st, ad := setupAdapter(t, nil)

	n, _ := st.Ingest(models.RawEvent{TaskID: "t1"})
	st.Ingest(models.RawEvent{TaskID: "t2"})

	if !ad.Remove(n.ID) {
		t.Fatal("remove failed")
	}
	if len(st.List()) != 1 {
		t.Fatalf("list = %d, want 1", len(st.List()))
	}
	ad.Clear()
	if len(st.List()) != 0 {
		t.Fatal("clear did not empty the store")
	}
}

func TestAlerterInvokedWhenGranted(t *testing.T) {
	alerter := &recordingAlerter{grant: true}
	st, ad := setupAdapter(t, alerter)

	n, ok := st.Ingest(models.RawEvent{Title: "Reminder", TaskID: "t1"})
	if !ok {
		t.Fatal("insert dropped")
	}
	ad.Notify(n)

	if len(alerter.alerts) != 1 || alerter.alerts[0].ID != n.ID {
		t.Fatalf("alerts = %+v", alerter.alerts)
	}
}

func TestAlerterDeniedDoesNotBlockData(t *testing.T) {
	alerter := &recordingAlerter{grant: false}
	st, ad := setupAdapter(t, alerter)

	n, ok := st.Ingest(models.RawEvent{TaskID: "t1"})
	if !ok {
		t.Fatal("insert dropped")
	}
	ad.Notify(n)

	if len(alerter.alerts) != 0 {
		t.Fatal("alert raised without permission")
	}
	if ad.UnreadCount() != 1 {
		t.Fatal("data path affected by denied permission")
	}
}

func TestAlerterFailureIgnored(t *testing.T) {
	alerter := &recordingAlerter{grant: true, fail: true}
	st, ad := setupAdapter(t, alerter)

	n, _ := st.Ingest(models.RawEvent{TaskID: "t1"})
	ad.Notify(n)

	if ad.UnreadCount() != 1 {
		t.Fatal("alert failure leaked into data path")
	}
}
