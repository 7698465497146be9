package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQueueByName(t *testing.T) {
	backend := newTestBackend(t)

	backend.Mux.HandleFunc(odataPrefix+"/QueueDefinitions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("$filter") == "Name eq 'Orders'" {
			writeODataPage(w, -1, []QueueDefinition{{ID: 5, Name: "Orders"}})
			return
		}
		writeODataPage(w, -1, []QueueDefinition{})
	})

	c := backend.client(t)

	queue, err := c.GetQueueByName(context.Background(), "Orders", 0)
	require.NoError(t, err)
	require.NotNil(t, queue)
	assert.EqualValues(t, 5, queue.ID)

	// A missing queue is an explicit absence, not an error.
	queue, err = c.GetQueueByName(context.Background(), "Missing", 0)
	require.NoError(t, err)
	assert.Nil(t, queue)
}

func TestListQueueItems_FilterComposition(t *testing.T) {
	backend := newTestBackend(t)

	var filter string
	backend.Mux.HandleFunc(odataPrefix+"/QueueItems", func(w http.ResponseWriter, r *http.Request) {
		filter = r.URL.Query().Get("$filter")
		writeODataPage(w, 0, []QueueItem{})
	})

	c := backend.client(t)
	_, err := c.ListQueueItems(context.Background(), ListQueueItemsOptions{
		QueueDefinitionID: 5,
		Status:            "Failed",
		From:              "2024-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"QueueDefinitionId eq 5 and Status eq 'Failed' and CreationTime ge 2024-01-01T00:00:00Z",
		filter)
}

func TestAddQueueItem_Envelope(t *testing.T) {
	backend := newTestBackend(t)

	var envelope addQueueItemEnvelope
	backend.Mux.HandleFunc(odataPrefix+"/Queues/UiPathODataSvc.AddQueueItem", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&envelope))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(QueueItem{ID: 99, Status: "New"})
	})

	c := backend.client(t)
	item, err := c.AddQueueItem(context.Background(), AddQueueItemOptions{
		QueueName:       "Orders",
		Reference:       "INV-1",
		SpecificContent: map[string]any{"amount": 12.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "Orders", envelope.ItemData.Name)
	assert.Equal(t, PriorityNormal, envelope.ItemData.Priority, "priority defaults to Normal")
	assert.Equal(t, "INV-1", envelope.ItemData.Reference)
	assert.Equal(t, 12.5, envelope.ItemData.SpecificContent["amount"])
	assert.EqualValues(t, 99, item.ID)
}

func TestGetRobotAsset_CompositeKeyRoute(t *testing.T) {
	backend := newTestBackend(t)

	const route = odataPrefix + "/Assets/UiPath.Server.Configuration.OData.GetRobotAssetByRobotId(robotId=12,assetName='db-password')"
	backend.Mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Asset{ID: 3, Name: "db-password", ValueType: "Credential"})
	})

	c := backend.client(t)
	asset, err := c.GetRobotAsset(context.Background(), 12, "db-password", 0)
	require.NoError(t, err)
	assert.Equal(t, "Credential", asset.ValueType)
}

func TestListRobots_FolderSubRoute(t *testing.T) {
	backend := newTestBackend(t)

	var path string
	backend.Mux.HandleFunc(odataPrefix+"/Folders(8)/Robots", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeODataPage(w, 0, []Robot{})
	})
	backend.Mux.HandleFunc(odataPrefix+"/Robots", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeODataPage(w, 0, []Robot{})
	})

	c := backend.client(t)

	_, err := c.ListRobots(context.Background(), ListRobotsOptions{FolderID: 8})
	require.NoError(t, err)
	assert.Equal(t, odataPrefix+"/Folders(8)/Robots", path)

	_, err = c.ListRobots(context.Background(), ListRobotsOptions{})
	require.NoError(t, err)
	assert.Equal(t, odataPrefix+"/Robots", path)
}
