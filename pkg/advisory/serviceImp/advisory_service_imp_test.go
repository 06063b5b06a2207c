package serviceImp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agrismart/entities"
	"agrismart/pkg/advisory"
	"agrismart/pkg/ai"
	"agrismart/pkg/analytics"
	"agrismart/pkg/session"
	"agrismart/pkg/testutil"
)

func TestRecommend_Success(t *testing.T) {
	chat := &testutil.FakeChat{Reply: "```\n**Use Urea** 50 kg/acre\n```"}
	store := &testutil.MemStore{}
	sink := &testutil.RecordingSink{}
	svc := New(chat, store, sink, zap.NewNop())

	ctx := session.With(context.Background(), "sid-1")
	out, err := svc.Recommend(ctx, advisory.Request{SoilType: "Clay", CropType: "Rice", Season: "Kharif"})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Use Urea 50 kg/acre", out.Recommendation)
	assert.Equal(t, "Clay", out.InputData.SoilType)
	assert.Equal(t, "rec-1", out.RecordID)
	assert.Equal(t, 2, strings.Count(chat.LastPrompt(), "Not specified"))

	require.Len(t, store.Recs, 1)
	assert.Equal(t, entities.KindAdvisory, store.Recs[0].Kind)
	assert.Equal(t, "sid-1", store.Recs[0].SessionID)
	assert.Equal(t, []string{analytics.EventAdvisoryRequested}, sink.Names())
}

func TestRecommend_ValidationSkipsUpstream(t *testing.T) {
	chat := &testutil.FakeChat{Reply: "x"}
	svc := New(chat, &testutil.MemStore{}, &testutil.RecordingSink{}, zap.NewNop())

	_, err := svc.Recommend(context.Background(), advisory.Request{SoilType: "Clay", CropType: "Rice"})
	var verr *advisory.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"season"}, verr.Missing)
	assert.Empty(t, chat.Requests)
}

func TestRecommend_UpstreamFailureTracked(t *testing.T) {
	chat := &testutil.FakeChat{Err: &ai.UpstreamError{Status: 401, Message: "bad key"}}
	store := &testutil.MemStore{}
	sink := &testutil.RecordingSink{}
	svc := New(chat, store, sink, zap.NewNop())

	_, err := svc.Recommend(context.Background(), advisory.Request{SoilType: "Clay", CropType: "Rice", Season: "rabi"})
	var up *ai.UpstreamError
	require.True(t, errors.As(err, &up))
	assert.Empty(t, store.Recs)
	require.Len(t, sink.Events, 1)
	assert.Equal(t, analytics.EventAdvisoryFailed, sink.Events[0].Name)
	assert.Equal(t, "upstream", sink.Events[0].Params["reason"])
	assert.Equal(t, 401, sink.Events[0].Params["status"])
}

func TestRecommend_StoreFailureIsNotFatal(t *testing.T) {
	chat := &testutil.FakeChat{Reply: "ok"}
	store := &testutil.MemStore{Err: errors.New("disk full")}
	sink := &testutil.RecordingSink{Err: errors.New("broker down")}
	svc := New(chat, store, sink, zap.NewNop())

	out, err := svc.Recommend(context.Background(), advisory.Request{SoilType: "Clay", CropType: "Rice", Season: "Zaid"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Recommendation)
	assert.Empty(t, out.RecordID)
}
