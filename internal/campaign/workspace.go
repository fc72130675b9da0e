// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package campaign

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"brandforge/internal/brand"
	"brandforge/internal/media"
)

// State is the workspace's position in the campaign flow.
type State string

const (
	StateNoProfile     State = "no_profile"
	StateGoalSelection State = "goal_selection"
	StateIdeaListing   State = "idea_listing"
	StateIdeaSelected  State = "idea_selected"
)

// ErrBusy rejects a draft or animate request while the same flow is already
// running. The server handles requests concurrently, so the single-flow
// discipline is enforced here rather than assumed.
var ErrBusy = errors.New("a generation is already in progress")

// ErrStale reports that the workspace moved on (reset, back, a goal change)
// while a generation was in flight. The result was discarded; nothing in
// the workspace changed.
var ErrStale = errors.New("workspace changed while generating")

// Workspace owns all campaign state for one session: the brand profile, the
// chosen goal, the current idea list, and the asset batch. It sequences the
// four generation clients and guards every mutation with a mutex. One
// drafting flow and one animation flow may run at a time.
type Workspace struct {
	Extractor *Extractor
	Ideator   *Ideator
	Drafter   *Drafter
	Animator  *Animator
	Media     *media.Store

	owner string

	mu sync.Mutex
	// epoch counts replacements of the profile, goal, idea list, or asset
	// batch. A generation captures it when it starts and must find it
	// unchanged before committing its result; otherwise the result is
	// stale and is thrown away.
	epoch     uint64
	state     State
	profile   brand.Profile
	goal      brand.Goal
	ideas     []brand.Idea
	selected  brand.Idea
	assets    []brand.Asset
	active    brand.Channel
	drafting  bool
	animating bool
}

// NewWorkspace creates an empty workspace for a session. owner is the
// session ID that scopes generated media.
func NewWorkspace(owner string, extractor *Extractor, ideator *Ideator, drafter *Drafter, animator *Animator, store *media.Store) *Workspace {
	return &Workspace{
		Extractor: extractor,
		Ideator:   ideator,
		Drafter:   drafter,
		Animator:  animator,
		Media:     store,
		owner:     owner,
		state:     StateNoProfile,
	}
}

// View is a consistent read-only snapshot of the workspace for rendering.
type View struct {
	State     State
	Profile   brand.Profile
	Goal      brand.Goal
	Ideas     []brand.Idea
	Selected  brand.Idea
	Assets    []brand.Asset
	Active    brand.Channel
	Drafting  bool
	Animating bool
}

// Snapshot copies the current workspace state under the lock.
func (w *Workspace) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		State:     w.state,
		Profile:   w.profile,
		Goal:      w.goal,
		Selected:  w.selected,
		Active:    w.active,
		Drafting:  w.drafting,
		Animating: w.animating,
	}
	v.Ideas = append(v.Ideas, w.ideas...)
	v.Assets = append(v.Assets, w.assets...)
	return v
}

// State returns the current flow state.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Extract runs brand extraction from the intake form. Only legal before a
// profile exists; success moves the workspace to goal selection.
func (w *Workspace) Extract(ctx context.Context, input string) error {
	w.mu.Lock()
	if w.state != StateNoProfile {
		w.mu.Unlock()
		return fmt.Errorf("cannot extract: a brand profile already exists")
	}
	start := w.epoch
	w.mu.Unlock()

	profile, err := w.Extractor.Extract(ctx, input)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != start {
		return ErrStale
	}
	w.profile = profile
	w.state = StateGoalSelection
	w.epoch++
	return nil
}

// SelectGoal picks a campaign goal and immediately fetches ideas for it.
// Changing the goal from the idea list restarts ideation with the new goal.
// On ideation failure the workspace still moves to the idea listing with an
// empty list, so the user can retry from there.
func (w *Workspace) SelectGoal(ctx context.Context, goal brand.Goal) error {
	w.mu.Lock()
	if w.state != StateGoalSelection && w.state != StateIdeaListing {
		w.mu.Unlock()
		return fmt.Errorf("cannot pick a goal in state %s", w.state)
	}
	if !goal.Valid() {
		w.mu.Unlock()
		return fmt.Errorf("unknown campaign goal %q", goal)
	}
	w.goal = goal
	w.ideas = nil
	w.state = StateIdeaListing
	w.epoch++
	start := w.epoch
	profile := w.profile
	w.mu.Unlock()

	ideas, err := w.Ideator.Ideate(ctx, profile, goal, "")
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != start {
		return ErrStale
	}
	w.ideas = ideas
	w.epoch++
	return nil
}

// RefreshIdeas discards the current idea list and fetches a fresh one,
// optionally steered by a free-text prompt.
func (w *Workspace) RefreshIdeas(ctx context.Context, steering string) error {
	w.mu.Lock()
	if w.state != StateIdeaListing {
		w.mu.Unlock()
		return fmt.Errorf("cannot refresh ideas in state %s", w.state)
	}
	profile, goal := w.profile, w.goal
	start := w.epoch
	w.mu.Unlock()

	ideas, err := w.Ideator.Ideate(ctx, profile, goal, steering)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.epoch != start {
		return ErrStale
	}
	w.ideas = ideas
	w.epoch++
	return nil
}

// SelectIdea drafts the full asset batch for the idea at the given index.
// The previous batch, if any, is replaced wholesale; a failed draft leaves
// the workspace on the idea list it had before.
func (w *Workspace) SelectIdea(ctx context.Context, index int) error {
	w.mu.Lock()
	if w.state != StateIdeaListing {
		w.mu.Unlock()
		return fmt.Errorf("cannot select an idea in state %s", w.state)
	}
	if index < 0 || index >= len(w.ideas) {
		w.mu.Unlock()
		return fmt.Errorf("idea index %d out of range", index)
	}
	if w.drafting {
		w.mu.Unlock()
		return ErrBusy
	}
	w.drafting = true
	idea := w.ideas[index]
	profile, goal := w.profile, w.goal
	start := w.epoch
	w.mu.Unlock()

	assets, err := w.Drafter.Draft(ctx, w.owner, profile, idea.Theme, goal)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.drafting = false
	if err != nil {
		return err
	}

	// A reset or goal change may have landed while the draft ran; the new
	// batch (and its media, stored after any purge) must not resurrect the
	// old campaign.
	if w.epoch != start {
		deleteBatchMedia(w.Media, assets)
		return ErrStale
	}

	w.dropBatchLocked()
	w.selected = idea
	w.assets = assets
	w.active = assets[0].Channel
	w.state = StateIdeaSelected
	w.epoch++
	return nil
}

// EditAsset updates one copy field on one asset, leaving siblings untouched.
func (w *Workspace) EditAsset(id uuid.UUID, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	a := w.assetLocked(id)
	if a == nil {
		return fmt.Errorf("asset %s not found", id)
	}
	switch field {
	case "headline":
		a.Headline = value
	case "body":
		a.Body = value
	case "caption":
		a.Caption = value
	default:
		return fmt.Errorf("unknown asset field %q", field)
	}
	return nil
}

// SetTone replaces one tone axis on the profile. Assets are never
// regenerated by a tone edit; the new value steers future generations only.
func (w *Workspace) SetTone(axis string, value int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateNoProfile {
		return fmt.Errorf("no brand profile to adjust")
	}
	w.profile = w.profile.WithTone(axis, value)
	return nil
}

// SetActiveChannel switches which asset the editor shows. Pure view state.
func (w *Workspace) SetActiveChannel(ch brand.Channel) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, a := range w.assets {
		if a.Channel == ch {
			w.active = ch
			return nil
		}
	}
	return fmt.Errorf("no asset for channel %s", ch)
}

// Schedule attaches a publish time to one asset. A zero time is rejected
// with ErrScheduleDate and nothing changes.
func (w *Workspace) Schedule(id uuid.UUID, when time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if when.IsZero() {
		return ErrScheduleDate
	}
	a := w.assetLocked(id)
	if a == nil {
		return fmt.Errorf("asset %s not found", id)
	}
	a.ScheduledAt = &when
	return nil
}

// Animate runs the image-to-video flow for one asset. An asset without an
// image is a no-op. On success the video reference is attached to exactly
// that asset; on failure the asset keeps its image-only state.
func (w *Workspace) Animate(ctx context.Context, id uuid.UUID, styleName string) error {
	w.mu.Lock()
	if w.state != StateIdeaSelected {
		w.mu.Unlock()
		return fmt.Errorf("cannot animate in state %s", w.state)
	}
	a := w.assetLocked(id)
	if a == nil {
		w.mu.Unlock()
		return fmt.Errorf("asset %s not found", id)
	}
	if !a.HasImage() {
		w.mu.Unlock()
		return nil
	}
	if w.animating {
		w.mu.Unlock()
		return ErrBusy
	}
	w.animating = true
	imageID := a.ImageID
	theme := w.selected.Theme
	w.mu.Unlock()

	style := brand.StyleByName(styleName)
	videoID, _, err := w.Animator.Animate(ctx, w.owner, imageID, style, theme)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.animating = false
	if err != nil {
		return err
	}

	// The batch may have been replaced while the render ran; only attach to
	// the asset that still carries the source image.
	if a := w.assetLocked(id); a != nil && a.ImageID == imageID {
		a.VideoID = videoID
	} else {
		w.Media.Delete(videoID)
	}
	return nil
}

// Back discards the asset batch and returns to the retained idea list.
func (w *Workspace) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdeaSelected {
		return fmt.Errorf("cannot go back in state %s", w.state)
	}
	w.dropBatchLocked()
	w.selected = brand.Idea{}
	w.state = StateIdeaListing
	w.epoch++
	return nil
}

// Reset discards the profile and every derived artifact, including all
// session media, and returns to the intake screen.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.profile = brand.Profile{}
	w.goal = ""
	w.ideas = nil
	w.selected = brand.Idea{}
	w.assets = nil
	w.active = ""
	w.state = StateNoProfile
	w.epoch++
	w.Media.PurgeOwner(w.owner)
}

// assetLocked finds an asset by ID. Caller holds the mutex.
func (w *Workspace) assetLocked(id uuid.UUID) *brand.Asset {
	for i := range w.assets {
		if w.assets[i].ID == id {
			return &w.assets[i]
		}
	}
	return nil
}

// dropBatchLocked deletes the current batch and its media blobs. Caller
// holds the mutex.
func (w *Workspace) dropBatchLocked() {
	deleteBatchMedia(w.Media, w.assets)
	w.assets = nil
}

// deleteBatchMedia removes the blobs behind a batch that will not be kept.
func deleteBatchMedia(store *media.Store, assets []brand.Asset) {
	for _, a := range assets {
		if a.ImageID != uuid.Nil {
			store.Delete(a.ImageID)
		}
		if a.VideoID != uuid.Nil {
			store.Delete(a.VideoID)
		}
	}
}
