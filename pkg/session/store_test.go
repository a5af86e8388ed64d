package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCurrentStartsNil(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Current())
}

func TestStorePublishReachesAllSubscribers(t *testing.T) {
	s := NewStore()

	ch1, cancel1 := s.Subscribe()
	defer cancel1()
	ch2, cancel2 := s.Subscribe()
	defer cancel2()

	alice := &User{ID: "u1", Email: "alice@clinic.test", Role: "PATIENT"}
	s.Set(alice)

	assert.Equal(t, alice, <-ch1)
	assert.Equal(t, alice, <-ch2)
	assert.Equal(t, alice, s.Current())
}

func TestStoreOneEmissionPerAction(t *testing.T) {
	s := NewStore()

	ch, cancel := s.Subscribe()
	defer cancel()

	s.Set(&User{ID: "u1"})
	s.Set(&User{ID: "u1", Role: "DOCTOR"}) // refresh
	s.Clear()                              // logout

	require.Len(t, ch, 3)
	assert.Equal(t, "u1", (<-ch).ID)
	assert.Equal(t, "DOCTOR", (<-ch).Role)
	assert.Nil(t, <-ch)
	assert.Nil(t, s.Current())
}

func TestStoreLateSubscriberSeesCurrentOnly(t *testing.T) {
	s := NewStore()
	s.Set(&User{ID: "u1"})

	ch, cancel := s.Subscribe()
	defer cancel()

	// No replay of past emissions; the latest value is read via Current.
	assert.Len(t, ch, 0)
	require.NotNil(t, s.Current())
	assert.Equal(t, "u1", s.Current().ID)
}

func TestStoreCancelStopsDelivery(t *testing.T) {
	s := NewStore()

	ch, cancel := s.Subscribe()
	cancel()

	s.Set(&User{ID: "u1"})

	_, open := <-ch
	assert.False(t, open)
}
