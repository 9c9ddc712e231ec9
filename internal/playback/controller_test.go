package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowfield/chorus/internal/catalog"
	"github.com/lowfield/chorus/internal/progress"
	"github.com/lowfield/chorus/internal/queue"
	"github.com/lowfield/chorus/internal/widget"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Track{
		{ID: "a", Title: "Alpha", Artist: "One", ExternalMediaID: "ext-a"},
		{ID: "b", Title: "Beta", Artist: "Two", ExternalMediaID: "ext-b"},
		{ID: "c", Title: "Gamma", Artist: "Three", ExternalMediaID: "ext-c"},
	})
}

func newTestController() (*Controller, *fakeTransport) {
	ft := newFakeTransport()
	c := New(testCatalog(), queue.New(), ft, nil)
	return c, ft
}

func TestPlayTrack(t *testing.T) {
	c, ft := newTestController()

	track := *c.catalog.Track(0)
	c.PlayTrack(track)

	s := c.Session()
	require.NotNil(t, s.CurrentTrack)
	assert.Equal(t, "a", s.CurrentTrack.ID)
	assert.True(t, s.IsPlaying)
	assert.Equal(t, []string{"ext-a"}, ft.loadCalls())
}

func TestPlayTrack_NoExternalID(t *testing.T) {
	c, ft := newTestController()

	c.PlayTrack(catalog.Track{ID: "x", Title: "No Media"})

	s := c.Session()
	assert.Nil(t, s.CurrentTrack)
	assert.False(t, s.IsPlaying)
	assert.Empty(t, ft.loadCalls())
}

func TestPlayTrack_NotConnected(t *testing.T) {
	c, ft := newTestController()
	ft.setConnected(false)

	c.PlayTrack(*c.catalog.Track(0))

	assert.Nil(t, c.Session().CurrentTrack)
	assert.Empty(t, ft.loadCalls())
}

func TestTogglePlay_NoTrackStartsCatalogHead(t *testing.T) {
	c, _ := newTestController()

	c.TogglePlay()

	s := c.Session()
	require.NotNil(t, s.CurrentTrack)
	assert.Equal(t, "a", s.CurrentTrack.ID)
	assert.True(t, s.IsPlaying)
}

func TestTogglePlay_FlipsState(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(0))

	c.TogglePlay()
	assert.False(t, c.Session().IsPlaying)
	assert.Equal(t, 1, ft.pauseCalls())

	c.TogglePlay()
	assert.True(t, c.Session().IsPlaying)
	assert.Equal(t, 1, ft.playCalls())
}

// Scenario: catalog [a,b,c], no queue, repeat off, shuffle off.
// Next walks the catalog and stops at the end.
func TestNext_BasicPlayback(t *testing.T) {
	c, _ := newTestController()

	c.PlayTrack(*c.catalog.Track(0))
	c.Next()
	assert.Equal(t, "b", c.Session().CurrentTrack.ID)
	c.Next()
	assert.Equal(t, "c", c.Session().CurrentTrack.ID)
	c.Next()
	assert.Equal(t, "c", c.Session().CurrentTrack.ID, "end of catalog is a no-op")
}

func TestNext_RepeatAllWraps(t *testing.T) {
	c, _ := newTestController()
	c.CycleRepeatMode() // RepeatAll

	c.PlayTrack(*c.catalog.Track(2))
	c.Next()

	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestNext_ShuffleAtEndPicksRandom(t *testing.T) {
	c, _ := newTestController()
	c.randIdx = fixedRand(1)
	c.ToggleShuffle()

	c.PlayTrack(*c.catalog.Track(2))
	c.Next()

	assert.Equal(t, "b", c.Session().CurrentTrack.ID)
}

func TestNext_NoCurrentTrackStartsAtZero(t *testing.T) {
	c, _ := newTestController()

	c.Next()

	require.NotNil(t, c.Session().CurrentTrack)
	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestPrevious_RestartThreshold(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(1))
	ft.setPosition(5)

	c.Previous()

	assert.Equal(t, "b", c.Session().CurrentTrack.ID, "track must not change")
	require.NotEmpty(t, ft.seekCalls())
	assert.Equal(t, float64(0), ft.seekCalls()[0])
	assert.Equal(t, float64(0), c.Session().CurrentTimeSeconds)
}

func TestPrevious_UnderThresholdSkipsBack(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(1))
	ft.setPosition(2)

	c.Previous()

	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestPrevious_AtStartPlainNoop(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(0))
	ft.setPosition(1)

	c.Previous()

	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestPrevious_AtStartRepeatAllWrapsToLast(t *testing.T) {
	c, ft := newTestController()
	c.CycleRepeatMode() // RepeatAll
	c.PlayTrack(*c.catalog.Track(0))
	ft.setPosition(1)

	c.Previous()

	assert.Equal(t, "c", c.Session().CurrentTrack.ID)
}

func TestSetVolume_Clamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-20, 0}, {0, 0}, {55, 55}, {100, 100}, {140, 100},
	}
	for _, tt := range tests {
		c, _ := newTestController()
		c.SetVolume(tt.in)
		assert.Equal(t, tt.want, c.Volume(), "SetVolume(%d)", tt.in)
	}
}

func TestSetVolume_Persists(t *testing.T) {
	ft := newFakeTransport()
	store := &memVolumeStore{v: 65}
	c := New(testCatalog(), queue.New(), ft, store)

	assert.Equal(t, 65, c.Volume(), "restored from store")
	assert.Equal(t, []int{65}, ft.volumeCalls(), "restored volume pushed to transport")

	c.SetVolume(30)
	assert.Equal(t, 30, store.v)
	assert.Equal(t, 1, store.saves)
}

func TestSeekPercent(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(0))
	c.handleProgress(progress.Update{Current: 10, Duration: 200})

	c.SeekPercent(50)

	require.NotEmpty(t, ft.seekCalls())
	assert.Equal(t, float64(100), ft.seekCalls()[0])
}

func TestSeekPercent_UnknownDurationNoop(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(0))

	c.SeekPercent(50)

	assert.Empty(t, ft.seekCalls())
}

func TestSeekPercent_ClampsInput(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(0))
	c.handleProgress(progress.Update{Current: 0, Duration: 100})

	c.SeekPercent(250)

	require.NotEmpty(t, ft.seekCalls())
	assert.Equal(t, float64(100), ft.seekCalls()[0])
}

func TestProgressConsistency(t *testing.T) {
	c, _ := newTestController()
	c.PlayTrack(*c.catalog.Track(0))

	c.handleProgress(progress.Update{Current: 30, Duration: 120})

	s := c.Session()
	assert.Equal(t, float64(25), s.ProgressPercent)
	assert.Equal(t, float64(30), s.CurrentTimeSeconds)
	assert.Equal(t, float64(120), s.DurationSeconds)
}

// Scenario: queue precedence over catalog fallback, then RepeatAll wrap.
func TestTrackEnded_QueuePrecedence(t *testing.T) {
	c, _ := newTestController()
	c.CycleRepeatMode() // RepeatAll
	c.PlayTrack(*c.catalog.Track(0))

	x := catalog.Track{ID: "x", Title: "Ex", ExternalMediaID: "ext-x"}
	y := catalog.Track{ID: "y", Title: "Why", ExternalMediaID: "ext-y"}
	c.Enqueue(x)
	c.Enqueue(y)

	c.handleTrackEnded()
	assert.Equal(t, "x", c.Session().CurrentTrack.ID)
	assert.Len(t, c.QueueTracks(), 1)

	c.handleTrackEnded()
	assert.Equal(t, "y", c.Session().CurrentTrack.ID)
	assert.Empty(t, c.QueueTracks())

	// Queue drained: catalog fallback applies. y is not in the catalog,
	// so resolution starts from the top.
	c.handleTrackEnded()
	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestTrackEnded_QueueShrinksByOne(t *testing.T) {
	c, _ := newTestController()
	c.PlayTrack(*c.catalog.Track(0))
	c.Enqueue(*c.catalog.Track(2))
	c.Enqueue(*c.catalog.Track(2))

	before := len(c.QueueTracks())
	c.handleTrackEnded()

	assert.Equal(t, before-1, len(c.QueueTracks()))
	assert.Equal(t, "c", c.Session().CurrentTrack.ID)
}

func TestTrackEnded_RepeatOneReplays(t *testing.T) {
	c, ft := newTestController()
	c.CycleRepeatMode() // All
	c.CycleRepeatMode() // One
	c.PlayTrack(*c.catalog.Track(1))
	c.Enqueue(*c.catalog.Track(2)) // must be ignored under RepeatOne

	for i := 0; i < 5; i++ {
		c.handleTrackEnded()
	}

	s := c.Session()
	assert.Equal(t, "b", s.CurrentTrack.ID, "RepeatOne never changes track")
	assert.True(t, s.IsPlaying)
	assert.Len(t, c.QueueTracks(), 1, "queue untouched under RepeatOne")
	assert.Len(t, ft.seekCalls(), 5, "each end seeks back to 0")
	assert.Equal(t, float64(0), ft.seekCalls()[0])
}

func TestTrackEnded_RepeatAllWrapsCatalog(t *testing.T) {
	c, _ := newTestController()
	c.CycleRepeatMode() // RepeatAll
	c.PlayTrack(*c.catalog.Track(2))

	c.handleTrackEnded()

	assert.Equal(t, "a", c.Session().CurrentTrack.ID)
}

func TestTrackEnded_NoMaterialStops(t *testing.T) {
	c, _ := newTestController()
	c.PlayTrack(*c.catalog.Track(2))

	c.handleTrackEnded()

	s := c.Session()
	assert.False(t, s.IsPlaying)
	require.NotNil(t, s.CurrentTrack)
	assert.Equal(t, "c", s.CurrentTrack.ID, "last track stays loaded")
}

func TestToggleShuffle(t *testing.T) {
	c, _ := newTestController()

	assert.True(t, c.ToggleShuffle())
	assert.False(t, c.ToggleShuffle())
}

func TestCycleRepeatMode(t *testing.T) {
	c, _ := newTestController()

	assert.Equal(t, RepeatAll, c.CycleRepeatMode())
	assert.Equal(t, RepeatOne, c.CycleRepeatMode())
	assert.Equal(t, RepeatOff, c.CycleRepeatMode())
}

func TestModeTogglesDoNotTouchCurrentTrack(t *testing.T) {
	c, ft := newTestController()
	c.PlayTrack(*c.catalog.Track(1))
	loads := len(ft.loadCalls())

	c.ToggleShuffle()
	c.CycleRepeatMode()
	c.ToggleBackgroundPlay()

	assert.Equal(t, "b", c.Session().CurrentTrack.ID)
	assert.Equal(t, loads, len(ft.loadCalls()), "no widget commands from mode toggles")
}

func TestSubscription_ReceivesEvents(t *testing.T) {
	c, _ := newTestController()
	sub := c.Subscribe()

	c.PlayTrack(*c.catalog.Track(0))

	select {
	case e := <-sub.TrackChanged:
		assert.Nil(t, e.Previous)
		require.NotNil(t, e.Current)
		assert.Equal(t, "a", e.Current.ID)
	default:
		t.Fatal("no TrackChange event")
	}
	select {
	case e := <-sub.StateChanged:
		assert.True(t, e.Playing)
	default:
		t.Fatal("no StateChange event")
	}
}

func TestPump_EndedEventAppliesPolicy(t *testing.T) {
	c, ft := newTestController()
	c.Start()
	defer c.Close()

	c.PlayTrack(*c.catalog.Track(0))
	ft.stateCh <- widget.StateEnded

	assert.Eventually(t, func() bool {
		s := c.Session()
		return s.CurrentTrack != nil && s.CurrentTrack.ID == "b"
	}, time.Second, time.Millisecond, "ended event should advance to the next catalog track")
}

func TestClose_DestroysTransport(t *testing.T) {
	c, ft := newTestController()
	c.Start()
	sub := c.Subscribe()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "Close is idempotent")

	assert.True(t, ft.destroyed)
	select {
	case <-sub.Done:
	default:
		t.Fatal("subscription not closed")
	}
}

func TestWidgetErrorForwarded(t *testing.T) {
	c, ft := newTestController()
	c.Start()
	defer c.Close()
	sub := c.Subscribe()

	ft.errorCh <- widget.Error{Code: widget.CodeLoadMedia}

	select {
	case e := <-sub.Error:
		assert.Equal(t, widget.CodeLoadMedia, e.Err.Code)
	case <-sub.Done:
		t.Fatal("controller closed early")
	case <-time.After(time.Second):
		t.Fatal("error never forwarded")
	}
}

func TestSessionNextUp(t *testing.T) {
	c, _ := newTestController()

	assert.Nil(t, c.Session().NextUp)

	c.Enqueue(*c.catalog.Track(1))
	c.Enqueue(*c.catalog.Track(2))

	s := c.Session()
	require.NotNil(t, s.NextUp)
	assert.Equal(t, "b", s.NextUp.ID, "next up is the queue head")
	assert.Len(t, s.Queue, 2, "snapshot must not drain the queue")
}

func TestClearQueue(t *testing.T) {
	c, _ := newTestController()
	sub := c.Subscribe()

	c.Enqueue(*c.catalog.Track(1))
	c.Enqueue(*c.catalog.Track(2))
	<-sub.QueueChanged
	<-sub.QueueChanged

	c.ClearQueue()

	assert.Empty(t, c.QueueTracks())
	assert.Nil(t, c.Session().NextUp)
	select {
	case e := <-sub.QueueChanged:
		assert.Empty(t, e.Tracks)
	default:
		t.Fatal("no QueueChange event after clear")
	}
}
