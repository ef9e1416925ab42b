package model

import (
	"sync"
	"testing"
)

func TestNewLayoutModel(t *testing.T) {
	lm := NewLayoutModel()

	if lm.GetContentViewID() != "" {
		t.Errorf("initial GetContentViewID() = %q, want empty", lm.GetContentViewID())
	}
	if lm.GetContentParams() != nil {
		t.Error("initial GetContentParams() should be nil")
	}
	if lm.GetRevision() != 0 {
		t.Errorf("initial GetRevision() = %d, want 0", lm.GetRevision())
	}
}

func TestLayoutModel_SetContent(t *testing.T) {
	lm := NewLayoutModel()

	lm.SetContent(FilterViewID, nil)
	if lm.GetContentViewID() != FilterViewID {
		t.Errorf("GetContentViewID() = %q, want %q", lm.GetContentViewID(), FilterViewID)
	}
	if lm.GetRevision() != 1 {
		t.Errorf("GetRevision() = %d, want 1", lm.GetRevision())
	}

	lm.SetContent(FilterViewID, EncodeFilterParams(FilterParams{SavedViewID: "v1"}))
	if got := DecodeFilterParams(lm.GetContentParams()).SavedViewID; got != "v1" {
		t.Errorf("saved view param = %q, want v1", got)
	}
	if lm.GetRevision() != 2 {
		t.Errorf("GetRevision() = %d, want 2 after second SetContent", lm.GetRevision())
	}
}

func TestLayoutModel_Touch(t *testing.T) {
	lm := NewLayoutModel()
	lm.SetContent(HelpViewID, map[string]any{"foo": "bar"})
	initial := lm.GetRevision()

	lm.Touch()
	lm.Touch()

	if lm.GetRevision() != initial+2 {
		t.Errorf("GetRevision() after 2 touches = %d, want %d", lm.GetRevision(), initial+2)
	}
	if lm.GetContentViewID() != HelpViewID {
		t.Errorf("GetContentViewID() changed after Touch = %q", lm.GetContentViewID())
	}
	if lm.GetContentParams()["foo"] != "bar" {
		t.Error("GetContentParams() changed after Touch")
	}
}

func TestLayoutModel_Listeners(t *testing.T) {
	lm := NewLayoutModel()

	calls := make(map[int]int)
	id1 := lm.AddListener(func() { calls[1]++ })
	id2 := lm.AddListener(func() { calls[2]++ })

	if id1 == 0 || id2 == 0 || id1 == id2 {
		t.Fatalf("listener ids = %d, %d; want distinct and non-zero", id1, id2)
	}

	lm.SetContent(FilterViewID, nil)
	lm.RemoveListener(id2)
	lm.Touch()
	lm.RemoveListener(id1)
	lm.SetContent(SavedViewsViewID, nil)

	if calls[1] != 2 || calls[2] != 1 {
		t.Errorf("call counts = %v, want {1:2, 2:1}", calls)
	}

	// unknown ids are ignored
	lm.RemoveListener(999)
	lm.RemoveListener(0)
}

func TestLayoutModel_RevisionMonotonicity(t *testing.T) {
	lm := NewLayoutModel()
	var last uint64
	for range 50 {
		lm.SetContent(FilterViewID, nil)
		rev := lm.GetRevision()
		if rev <= last {
			t.Fatalf("revision %d not greater than %d", rev, last)
		}
		last = rev
	}
}

func TestLayoutModel_ConcurrentAccess(t *testing.T) {
	lm := NewLayoutModel()
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := range 100 {
			lm.SetContent(FilterViewID, map[string]any{"index": i})
			lm.Touch()
		}
	}()
	go func() {
		defer wg.Done()
		for range 100 {
			_ = lm.GetContentViewID()
			_ = lm.GetContentParams()
			_ = lm.GetRevision()
		}
	}()
	go func() {
		defer wg.Done()
		for range 10 {
			id := lm.AddListener(func() {})
			lm.RemoveListener(id)
		}
	}()
	wg.Wait()
}
