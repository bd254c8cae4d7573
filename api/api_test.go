package api

import (
	"testing"
	"time"

	"iconstudio/iconpack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*API, *WSClient) {
	t.Helper()
	require.NoError(t, iconpack.Initialize(t.TempDir()))

	api := NewAPI()
	client := &WSClient{
		send: make(chan WSMessage, 16),
		api:  api,
		id:   "test",
	}
	return api, client
}

func recvMessage(t *testing.T, client *WSClient) WSMessage {
	t.Helper()
	select {
	case msg := <-client.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no response message")
		return WSMessage{}
	}
}

func TestHandleCreateAndGetPacks(t *testing.T) {
	_, client := newTestClient(t)

	err := client.handleMessage(WSMessage{
		Type:      MessageTypeCreatePack,
		RequestID: "r1",
		Data:      map[string]interface{}{"name": "My Pack"},
	})
	require.NoError(t, err)

	msg := recvMessage(t, client)
	assert.Equal(t, MessageTypeAck, msg.Type)
	assert.Equal(t, "r1", msg.RequestID)
	assert.Equal(t, "my-pack", msg.Data)

	require.NoError(t, client.handleMessage(WSMessage{Type: MessageTypeGetPacks, RequestID: "r2"}))
	msg = recvMessage(t, client)
	assert.Equal(t, MessageTypePackData, msg.Type)
	packs, ok := msg.Data.([]*PackSafe)
	require.True(t, ok)
	require.Len(t, packs, 1)
	assert.Equal(t, "my-pack", packs[0].Name)
	assert.Equal(t, "mp", packs[0].Prefix)
}

func TestHandleCreatePackRejections(t *testing.T) {
	_, client := newTestClient(t)

	err := client.handleMessage(WSMessage{
		Type: MessageTypeCreatePack,
		Data: map[string]interface{}{"name": "   "},
	})
	assert.Error(t, err)

	require.NoError(t, iconpack.CreateCustomIconPackDirectory("taken"))
	err = client.handleMessage(WSMessage{
		Type: MessageTypeCreatePack,
		Data: map[string]interface{}{"name": "Taken"},
	})
	assert.Error(t, err)
}

func TestHandleDeletePack(t *testing.T) {
	_, client := newTestClient(t)
	require.NoError(t, iconpack.CreateCustomIconPackDirectory("gone"))

	err := client.handleMessage(WSMessage{
		Type:      MessageTypeDeletePack,
		RequestID: "r1",
		Data:      map[string]interface{}{"name": "gone"},
	})
	require.NoError(t, err)

	msg := recvMessage(t, client)
	assert.Equal(t, MessageTypeAck, msg.Type)
	assert.False(t, iconpack.DoesIconPackExist("gone"))
}

func TestHandleRefreshPack(t *testing.T) {
	_, client := newTestClient(t)
	require.NoError(t, iconpack.CreateCustomIconPackDirectory("foo"))
	require.NoError(t, iconpack.CreateFile("foo", "a.svg", []byte("<svg/>")))
	require.NoError(t, iconpack.CreateFile("foo", "b.svg", []byte("<svg/>")))

	err := client.handleMessage(WSMessage{
		Type:      MessageTypeRefreshPack,
		RequestID: "r1",
		Data:      map[string]interface{}{"name": "foo"},
	})
	require.NoError(t, err)

	msg := recvMessage(t, client)
	assert.Equal(t, MessageTypePackData, msg.Type)
	result, ok := msg.Data.(RefreshResult)
	require.True(t, ok)
	assert.Equal(t, 2, result.Icons)

	pack, ok := iconpack.Default().Get("foo")
	require.True(t, ok)
	assert.Equal(t, 2, pack.IconCount())
}

func TestHandleUnknownMessageType(t *testing.T) {
	_, client := newTestClient(t)
	assert.Error(t, client.handleMessage(WSMessage{Type: "bogus"}))
}
