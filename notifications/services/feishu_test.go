package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAlert() NotArrivedAlert {
	return NotArrivedAlert{
		RecordID:     "abc123",
		Material:     "螺纹钢",
		Spec:         "HRB400",
		Quantity:     "120",
		Unit:         "吨",
		DeliveryTime: "2024-01-01 00:00",
		Project:      "项目X",
	}
}

func TestFeishuSendPostsCard(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"code":0,"msg":"success"}`))
	}))
	defer server.Close()

	client := NewFeishuClient(server.URL, zap.NewNop())
	require.NoError(t, client.Send(context.Background(), testAlert()))

	assert.Equal(t, "interactive", received["msg_type"])
	card, _ := json.Marshal(received["card"])
	assert.Contains(t, string(card), "螺纹钢")
	assert.Contains(t, string(card), "项目X")
	assert.Contains(t, string(card), "未到货预警")
}

func TestFeishuSendRejectedMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":19001,"msg":"param invalid"}`))
	}))
	defer server.Close()

	client := NewFeishuClient(server.URL, zap.NewNop())
	err := client.Send(context.Background(), testAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "19001")
}

func TestFeishuSendUnconfiguredWebhook(t *testing.T) {
	client := NewFeishuClient("", zap.NewNop())
	assert.Error(t, client.Send(context.Background(), testAlert()))
}

func TestNewNotArrivedTaskPayloadRoundTrip(t *testing.T) {
	task, err := NewNotArrivedTask(testAlert())
	require.NoError(t, err)
	assert.Equal(t, TypeNotArrivedAlert, task.Type())

	var decoded NotArrivedAlert
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, testAlert(), decoded)
}
