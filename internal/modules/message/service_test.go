package message

import (
	"context"
	"sync"
	"testing"

	"rentalconnect/internal/domain"
	"rentalconnect/internal/repository"
	"rentalconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPusher struct {
	mu     sync.Mutex
	pushed map[int64][]interface{}
}

func (p *recordingPusher) SendToUser(userID int64, event interface{}) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = make(map[int64][]interface{})
	}
	p.pushed[userID] = append(p.pushed[userID], event)
	return true
}

func TestSend_Validation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, domain.RoleRenter)
	svc := NewService(repository.NewMessageRepository(db), repository.NewUserRepository(db), nil)

	_, err := svc.Send(ctx, a.ID, SendMessageRequest{ReceiverID: 0, Text: "hi"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Send(ctx, a.ID, SendMessageRequest{ReceiverID: a.ID + 1, Text: "   "})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Send(ctx, a.ID, SendMessageRequest{ReceiverID: a.ID, Text: "me"})
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(ctx, a.ID, SendMessageRequest{ReceiverID: 9999, Text: "anyone?"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestSend_PushesToReceiver(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	renter := testutil.CreateUser(t, db, domain.RoleRenter)
	landlord := testutil.CreateUser(t, db, domain.RoleLandlord)
	pusher := &recordingPusher{}
	svc := NewService(repository.NewMessageRepository(db), repository.NewUserRepository(db), pusher)

	m, err := svc.Send(ctx, renter.ID, SendMessageRequest{ReceiverID: landlord.ID, Text: " Is it still free? "})
	require.NoError(t, err)
	assert.Equal(t, "Is it still free?", m.Text)

	require.Len(t, pusher.pushed[landlord.ID], 1)
	ev := pusher.pushed[landlord.ID][0].(LiveEvent)
	assert.Equal(t, EventNewMessage, ev.Type)
	assert.Equal(t, m.ID, ev.Message.ID)
	assert.Empty(t, pusher.pushed[renter.ID])
}

func TestConversationAndContacts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	me := testutil.CreateUser(t, db, domain.RoleRenter)
	l1 := testutil.CreateUser(t, db, domain.RoleLandlord)
	l2 := testutil.CreateUser(t, db, domain.RoleLandlord)
	svc := NewService(repository.NewMessageRepository(db), repository.NewUserRepository(db), nil)

	send := func(from, to int64, text string) {
		_, err := svc.Send(ctx, from, SendMessageRequest{ReceiverID: to, Text: text})
		require.NoError(t, err)
	}
	send(me.ID, l1.ID, "hello l1")
	send(l1.ID, me.ID, "hi back")
	send(me.ID, l2.ID, "hello l2")

	conv, err := svc.Conversation(ctx, me.ID, l1.ID)
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "hello l1", conv[0].Text)
	assert.Equal(t, "hi back", conv[1].Text)

	contacts, err := svc.Contacts(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, l2.ID, contacts[0].User.ID)
	assert.Equal(t, "hello l2", contacts[0].LastMessage)
	assert.Equal(t, l1.ID, contacts[1].User.ID)
	assert.Equal(t, "hi back", contacts[1].LastMessage)

	inbox, err := svc.Inbox(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 3)
	assert.Equal(t, "hello l2", inbox[0].Text)

	empty, err := svc.Contacts(ctx, l2.ID+100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
