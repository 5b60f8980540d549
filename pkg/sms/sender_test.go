package sms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSenderRecordsMessages(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	err := sender.Send(ctx, "+639171234567", TemplateCodeCancelNotify, map[string]string{"code": "SAN-ABCDEF"})
	require.NoError(t, err)

	require.Len(t, sender.SentMessages, 1)
	msg := sender.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, "+639171234567", msg.Phone)
	assert.Equal(t, TemplateCodeCancelNotify, msg.TemplateCode)
	assert.Equal(t, "SAN-ABCDEF", msg.Params["code"])

	sender.Clear()
	assert.Nil(t, sender.GetLastMessage())
}

func TestSendBookingConfirm(t *testing.T) {
	sender := NewMockSender()
	checkIn := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)

	err := SendBookingConfirm(context.Background(), sender, "+639171234567", "SAN-XYZ234", checkIn)
	require.NoError(t, err)

	msg := sender.GetLastMessage()
	require.NotNil(t, msg)
	assert.Equal(t, TemplateCodeBookingConfirm, msg.TemplateCode)
	assert.Equal(t, "SAN-XYZ234", msg.Params["code"])
	assert.Equal(t, "2026-10-10", msg.Params["check_in"])
}
