package tracking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pet-care-tracker/internal/adapters/storage/memory"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/reminders"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/ports/docstore"
	"pet-care-tracker/internal/session"
)

const uid = "user-1"

func startRepo(t *testing.T, store docstore.Store, opts ...Option) (*Repository, *session.Session) {
	t.Helper()
	sess := session.NewSignedIn(auth.Claims{UserID: uid})
	repo := New(store, sess, opts...)
	repo.Start(context.Background())
	t.Cleanup(repo.Stop)
	return repo, sess
}

func ids[T any](items []T, key func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, key(it))
	}
	return out
}

// -------------------------
// Optimistic updates
// -------------------------

func TestSavePet_UpsertIsImmediateAndIdempotent(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	p := pets.Pet{ID: "p1", Name: "Milo", Breed: "Mixed", Age: 2, Weight: 10}
	repo.SavePet(p)

	got := repo.Pets().Get()
	require.Len(t, got, 1)
	assert.Equal(t, p, got[0])

	p.Name = "Milo II"
	repo.SavePet(p)
	repo.SavePet(p)

	got = repo.Pets().Get()
	require.Len(t, got, 1)
	assert.Equal(t, "Milo II", got[0].Name)

	repo.Flush()
	writes := store.recorded()
	require.Len(t, writes, 3)
	assert.Equal(t, recordedWrite{op: opSet, path: docstore.PetsPath(uid), id: "p1"}, writes[0])
}

func TestSavePet_AssignsIDWhenBlank(t *testing.T) {
	repo, _ := startRepo(t, newManualStore())

	repo.SavePet(pets.Pet{Name: "Luna"})

	got := repo.Pets().Get()
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
}

func TestSavePet_UpdateKeepsPositionAppendGoesLast(t *testing.T) {
	repo, _ := startRepo(t, newManualStore())

	repo.SavePet(pets.Pet{ID: "a"})
	repo.SavePet(pets.Pet{ID: "b"})
	repo.SavePet(pets.Pet{ID: "a", Name: "updated"})
	repo.SavePet(pets.Pet{ID: "c"})

	got := repo.Pets().Get()
	assert.Equal(t, []string{"a", "b", "c"}, ids(got, petKey))
	assert.Equal(t, "updated", got[0].Name)
}

func TestDeletePet_ImmediateAndIdempotent(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	repo.SavePet(pets.Pet{ID: "a"})
	repo.SavePet(pets.Pet{ID: "b"})

	repo.DeletePet(pets.Pet{ID: "a"})
	assert.Equal(t, []string{"b"}, ids(repo.Pets().Get(), petKey))

	repo.DeletePet(pets.Pet{ID: "a"})
	assert.Equal(t, []string{"b"}, ids(repo.Pets().Get(), petKey))
}

func TestMutations_NoSessionIsSilentNoop(t *testing.T) {
	store := newManualStore()
	repo := New(store, session.New())
	repo.Start(context.Background())
	defer repo.Stop()

	repo.SavePet(pets.Pet{ID: "p1"})
	repo.DeletePet(pets.Pet{ID: "p1"})
	repo.SaveReminder(reminders.Reminder{ID: "r1"})
	repo.SaveHealthEvent("p1", pets.HealthEvent{ID: "h1"})
	repo.Flush()

	assert.Empty(t, repo.Pets().Get())
	assert.Empty(t, repo.Reminders().Get())
	assert.Empty(t, store.recorded())
}

func TestSubEntities_RequirePetID(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	repo.SaveDiaryEntry("", pets.DiaryEntry{ID: "d1"})
	repo.DeleteWalkEntry(" ", pets.WalkEntry{ID: "w1"})
	repo.Flush()

	assert.Empty(t, store.recorded())
}

func TestSubEntities_OptimisticOnActivePet(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "p1"}, pets.Pet{ID: "p2"})
	require.Equal(t, "p1", repo.ActivePet().Get().ID)

	repo.SaveHealthEvent("p1", pets.HealthEvent{ID: "h1", Title: "Vacuna"})
	repo.SaveDiaryEntry("p1", pets.DiaryEntry{ID: "d1", Mood: "Feliz"})
	repo.SaveWalkEntry("p1", pets.WalkEntry{ID: "w1", Duration: "30"})
	assert.Equal(t, []string{"h1"}, ids(repo.HealthEvents().Get(), healthKey))
	assert.Equal(t, []string{"d1"}, ids(repo.DiaryEntries().Get(), diaryKey))
	assert.Equal(t, []string{"w1"}, ids(repo.WalkEntries().Get(), walkKey))

	// Otra mascota: sale la escritura remota, la lista activa no cambia.
	repo.SaveHealthEvent("p2", pets.HealthEvent{ID: "h2"})
	assert.Equal(t, []string{"h1"}, ids(repo.HealthEvents().Get(), healthKey))

	repo.DeleteHealthEvent("p1", pets.HealthEvent{ID: "h1"})
	repo.DeleteDiaryEntry("p1", pets.DiaryEntry{ID: "d1"})
	repo.DeleteWalkEntry("p1", pets.WalkEntry{ID: "w1"})
	assert.Empty(t, repo.HealthEvents().Get())
	assert.Empty(t, repo.DiaryEntries().Get())
	assert.Empty(t, repo.WalkEntries().Get())

	repo.Flush()
	writes := store.recorded()
	require.Len(t, writes, 7)
	assert.Equal(t, docstore.PetSubPath(uid, "p2", docstore.CollectionHealthEvents), writes[3].path)
}

func TestSubEntities_InactivePetWritesRemoteOnly(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"}, pets.Pet{ID: "b"})
	require.Equal(t, "a", repo.ActivePet().Get().ID)
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents), pets.HealthEvent{ID: "ha"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionDiaryEntries), pets.DiaryEntry{ID: "da"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries), pets.WalkEntry{ID: "wa"})

	repo.SaveHealthEvent("b", pets.HealthEvent{ID: "hb"})
	repo.SaveDiaryEntry("b", pets.DiaryEntry{ID: "db"})
	repo.SaveWalkEntry("b", pets.WalkEntry{ID: "wb"})
	// mismos ids que la activa: tampoco tocan su lista
	repo.DeleteHealthEvent("b", pets.HealthEvent{ID: "ha"})
	repo.DeleteDiaryEntry("b", pets.DiaryEntry{ID: "da"})
	repo.DeleteWalkEntry("b", pets.WalkEntry{ID: "wa"})

	assert.Equal(t, []string{"ha"}, ids(repo.HealthEvents().Get(), healthKey))
	assert.Equal(t, []string{"da"}, ids(repo.DiaryEntries().Get(), diaryKey))
	assert.Equal(t, []string{"wa"}, ids(repo.WalkEntries().Get(), walkKey))

	repo.Flush()
	assert.Equal(t, []recordedWrite{
		{op: opSet, path: docstore.PetSubPath(uid, "b", docstore.CollectionHealthEvents), id: "hb"},
		{op: opSet, path: docstore.PetSubPath(uid, "b", docstore.CollectionDiaryEntries), id: "db"},
		{op: opSet, path: docstore.PetSubPath(uid, "b", docstore.CollectionWalkEntries), id: "wb"},
		{op: opDelete, path: docstore.PetSubPath(uid, "b", docstore.CollectionHealthEvents), id: "ha"},
		{op: opDelete, path: docstore.PetSubPath(uid, "b", docstore.CollectionDiaryEntries), id: "da"},
		{op: opDelete, path: docstore.PetSubPath(uid, "b", docstore.CollectionWalkEntries), id: "wa"},
	}, store.recorded())
}

// -------------------------
// Readiness
// -------------------------

func TestWaitReady_BlocksUntilFirstPetsDelivery(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, repo.WaitReady(ctx), context.DeadlineExceeded)

	// otra colección no cuenta
	store.emit(t, docstore.RemindersPath(uid), reminders.Reminder{ID: "r1"})
	ctx2, cancel2 := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel2()
	require.ErrorIs(t, repo.WaitReady(ctx2), context.DeadlineExceeded)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	require.NoError(t, repo.WaitReady(t.Context()))
	_, ok := repo.PetByID("a")
	assert.True(t, ok)
}

func TestWaitReady_ListenErrorCountsAsSettled(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emitError(t, docstore.PetsPath(uid), errors.New("unavailable"))
	require.NoError(t, repo.WaitReady(t.Context()))
	assert.Empty(t, repo.Pets().Get())
}

func TestWaitReady_SignOutReleasesWaiters(t *testing.T) {
	store := newManualStore()
	repo, sess := startRepo(t, store)

	done := make(chan error, 1)
	go func() { done <- repo.WaitReady(t.Context()) }()

	sess.SignOut()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WaitReady still blocked after sign-out")
	}
}

func TestWaitReady_ResetsOnUserSwitch(t *testing.T) {
	store := newManualStore()
	repo, sess := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	require.NoError(t, repo.WaitReady(t.Context()))

	sess.SignIn(auth.Claims{UserID: "user-2"})
	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, repo.WaitReady(ctx), context.DeadlineExceeded)

	store.emit(t, docstore.PetsPath("user-2"))
	require.NoError(t, repo.WaitReady(t.Context()))
}

func TestReminders_SaveToggleDelete(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	r := reminders.NewReminder()
	r.Title = "Desparasitar"
	r.Time = "08:30"
	repo.SaveReminder(r)
	repo.SaveReminder(r.WithEnabled(false))

	got := repo.Reminders().Get()
	require.Len(t, got, 1)
	assert.False(t, got[0].Enabled)
	assert.True(t, r.Enabled, "WithEnabled must not mutate the original")

	repo.DeleteReminder(r)
	assert.Empty(t, repo.Reminders().Get())

	repo.Flush()
	for _, w := range store.recorded() {
		assert.Equal(t, docstore.RemindersPath(uid), w.path)
	}
}

// -------------------------
// Subscription protocol
// -------------------------

func TestPetsSnapshot_PromotesFirstWhenUnset(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	assert.Nil(t, repo.ActivePet().Get())

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a", Name: "Milo"}, pets.Pet{ID: "b"})

	active := repo.ActivePet().Get()
	require.NotNil(t, active)
	assert.Equal(t, "a", active.ID)
	assert.Equal(t, 1, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents)))
	assert.Equal(t, 1, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionDiaryEntries)))
	assert.Equal(t, 1, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries)))
}

func TestPetsSnapshot_PromotesFirstWhenActiveDisappears(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)
	path := docstore.PetsPath(uid)

	store.emit(t, path, pets.Pet{ID: "a"}, pets.Pet{ID: "b"}, pets.Pet{ID: "c"})
	repo.SetActivePet(&pets.Pet{ID: "b"})

	store.emit(t, path, pets.Pet{ID: "a"}, pets.Pet{ID: "c"})
	require.NotNil(t, repo.ActivePet().Get())
	assert.Equal(t, "a", repo.ActivePet().Get().ID)
	assert.Equal(t, 0, store.active(docstore.PetSubPath(uid, "b", docstore.CollectionHealthEvents)))
}

func TestPetsSnapshot_EmptyListClearsActive(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)
	path := docstore.PetsPath(uid)

	store.emit(t, path, pets.Pet{ID: "a"})
	require.NotNil(t, repo.ActivePet().Get())

	store.emit(t, path)
	assert.Nil(t, repo.ActivePet().Get())
	assert.Empty(t, repo.Pets().Get())
	assert.Equal(t, 0, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries)))
}

func TestPetsSnapshot_RefreshesActiveWithoutResubscribing(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)
	path := docstore.PetsPath(uid)
	healthPath := docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents)

	store.emit(t, path, pets.Pet{ID: "a", Name: "Milo"})
	store.emit(t, healthPath, pets.HealthEvent{ID: "h1"})

	store.emit(t, path, pets.Pet{ID: "a", Name: "Milo renamed"})

	assert.Equal(t, "Milo renamed", repo.ActivePet().Get().Name)
	assert.Equal(t, []string{"h1"}, ids(repo.HealthEvents().Get(), healthKey))
	assert.Equal(t, 1, store.active(healthPath))
}

func TestSetActivePet_ClearsBeforeNewData(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"}, pets.Pet{ID: "b"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents), pets.HealthEvent{ID: "ha"})
	require.Equal(t, []string{"ha"}, ids(repo.HealthEvents().Get(), healthKey))

	ch, cancel := repo.HealthEvents().Subscribe(32)
	defer cancel()
	<-ch // valor actual

	repo.SetActivePet(&pets.Pet{ID: "b"})
	store.emit(t, docstore.PetSubPath(uid, "b", docstore.CollectionHealthEvents), pets.HealthEvent{ID: "hb"})

	first := <-ch
	assert.Empty(t, first, "previous pet's events must be cleared first")
	second := <-ch
	assert.Equal(t, []string{"hb"}, ids(second, healthKey))
}

func TestSetActivePet_NilClearsAndUnsubscribes(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionDiaryEntries), pets.DiaryEntry{ID: "d1"})

	repo.SetActivePet(nil)

	assert.Nil(t, repo.ActivePet().Get())
	assert.Empty(t, repo.DiaryEntries().Get())
	assert.Equal(t, 0, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionDiaryEntries)))
}

func TestStaleDeliveryAfterSwitchIsDiscarded(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"}, pets.Pet{ID: "b"})
	repo.SetActivePet(&pets.Pet{ID: "b"})

	// entrega en vuelo del listener viejo de "a"
	store.emitStale(t, docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries), pets.WalkEntry{ID: "wa"})
	assert.Empty(t, repo.WalkEntries().Get())
}

func TestSignOut_ClearsEverything(t *testing.T) {
	store := newManualStore()
	repo, sess := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	store.emit(t, docstore.RemindersPath(uid), reminders.Reminder{ID: "r1"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents), pets.HealthEvent{ID: "h1"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionDiaryEntries), pets.DiaryEntry{ID: "d1"})
	store.emit(t, docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries), pets.WalkEntry{ID: "w1"})

	sess.SignOut()

	assert.Empty(t, repo.Pets().Get())
	assert.Nil(t, repo.ActivePet().Get())
	assert.Empty(t, repo.HealthEvents().Get())
	assert.Empty(t, repo.DiaryEntries().Get())
	assert.Empty(t, repo.WalkEntries().Get())
	assert.Empty(t, repo.Reminders().Get())
	assert.Equal(t, 0, store.active(docstore.PetsPath(uid)))
	assert.Equal(t, 0, store.active(docstore.RemindersPath(uid)))
	assert.Equal(t, 0, store.active(docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents)))

	// después del sign-out no hay usuario: mutaciones sin efecto
	repo.SavePet(pets.Pet{ID: "x"})
	assert.Empty(t, repo.Pets().Get())
}

func TestSwitchUser_ResubscribesForNewUser(t *testing.T) {
	store := newManualStore()
	repo, sess := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	sess.SignIn(auth.Claims{UserID: "user-2"})

	assert.Empty(t, repo.Pets().Get())
	assert.Equal(t, 0, store.active(docstore.PetsPath(uid)))
	assert.Equal(t, 1, store.active(docstore.PetsPath("user-2")))
	assert.Equal(t, "user-2", repo.UserID())
}

// -------------------------
// Failure semantics
// -------------------------

func TestWriteFailure_LoggedNotRolledBack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := newManualStore()
	store.failWith = errors.New("permission denied")
	repo, _ := startRepo(t, store, WithLogger(logger.FromZap(zap.New(core))))

	repo.SavePet(pets.Pet{ID: "p1"})
	repo.Flush()

	assert.Equal(t, []string{"p1"}, ids(repo.Pets().Get(), petKey))
	failed := logs.FilterMessage("remote write failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "p1", failed[0].ContextMap()["doc_id"])
}

func TestListenFailure_FreezesState(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store := newManualStore()
	repo, _ := startRepo(t, store, WithLogger(logger.FromZap(zap.New(core))))

	store.emit(t, docstore.RemindersPath(uid), reminders.Reminder{ID: "r1"})
	store.emitError(t, docstore.RemindersPath(uid), errors.New("unavailable"))

	assert.Equal(t, []string{"r1"}, ids(repo.Reminders().Get(), reminderKey))
	assert.Len(t, logs.FilterMessage("reminders listen failed").All(), 1)
}

func TestMalformedSnapshot_TreatedAsListenFailure(t *testing.T) {
	store := newManualStore()
	repo, _ := startRepo(t, store)

	store.emit(t, docstore.PetsPath(uid), pets.Pet{ID: "a"})
	store.emit(t, docstore.PetsPath(uid), map[string]any{"id": "b", "age": "not-a-number"})

	assert.Equal(t, []string{"a"}, ids(repo.Pets().Get(), petKey))
}

// -------------------------
// Con el store en memoria (asíncrono)
// -------------------------

func TestMemoryStore_EndToEndSync(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.PetsPath(uid), "b", pets.Pet{ID: "b", Name: "Luna"}))
	require.NoError(t, store.Set(ctx, docstore.PetsPath(uid), "a", pets.Pet{ID: "a", Name: "Milo"}))
	require.NoError(t, store.Set(ctx, docstore.PetSubPath(uid, "a", docstore.CollectionHealthEvents), "h1", pets.HealthEvent{ID: "h1"}))

	repo, _ := startRepo(t, store)

	require.Eventually(t, func() bool {
		a := repo.ActivePet().Get()
		return a != nil && a.ID == "a" && len(repo.HealthEvents().Get()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	repo.SaveWalkEntry("a", pets.WalkEntry{ID: "w1", Duration: "20 min"})
	repo.Flush()

	require.Eventually(t, func() bool {
		return len(store.Snapshot(docstore.PetSubPath(uid, "a", docstore.CollectionWalkEntries)).Documents) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDeletePet_DoesNotCascadeToSubCollections(t *testing.T) {
	store := memory.NewStore()
	repo, _ := startRepo(t, store)

	repo.SavePet(pets.Pet{ID: "p1", Name: "Milo"})
	require.Eventually(t, func() bool {
		a := repo.ActivePet().Get()
		return a != nil && a.ID == "p1"
	}, 2*time.Second, 10*time.Millisecond)

	repo.SaveHealthEvent("p1", pets.HealthEvent{ID: "h1"})
	repo.SaveDiaryEntry("p1", pets.DiaryEntry{ID: "d1"})
	repo.DeletePet(pets.Pet{ID: "p1"})
	repo.Flush()

	assert.Empty(t, store.Snapshot(docstore.PetsPath(uid)).Documents)
	assert.Len(t, store.Snapshot(docstore.PetSubPath(uid, "p1", docstore.CollectionHealthEvents)).Documents, 1)
	assert.Len(t, store.Snapshot(docstore.PetSubPath(uid, "p1", docstore.CollectionDiaryEntries)).Documents, 1)
}

// -------------------------
// Propiedades
// -------------------------

func TestProperty_OptimisticListMatchesLastWriteWins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// op v: id = v%5; v >= 10 => delete, si no => save con Name = v
	properties.Property("pets list mirrors a last-write-wins map with unique ids", prop.ForAll(
		func(ops []int) bool {
			repo := New(newManualStore(), session.NewSignedIn(auth.Claims{UserID: uid}))
			repo.Start(context.Background())
			defer repo.Stop()

			model := map[string]string{}
			for _, v := range ops {
				id := fmt.Sprintf("p%d", v%5)
				if v >= 10 {
					repo.DeletePet(pets.Pet{ID: id})
					delete(model, id)
					continue
				}
				name := fmt.Sprintf("n%d", v)
				repo.SavePet(pets.Pet{ID: id, Name: name})
				model[id] = name
			}

			got := repo.Pets().Get()
			if len(got) != len(model) {
				return false
			}
			seen := map[string]bool{}
			for _, p := range got {
				if seen[p.ID] || model[p.ID] != p.Name {
					return false
				}
				seen[p.ID] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 19)),
	))

	properties.TestingRun(t)
}
