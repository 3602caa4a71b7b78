package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
)

func TestDecodeOverrideEvent(t *testing.T) {
	ev := portfolio.NewOverrideEvent(portfolio.EventTypeOverrideDeleted, "mozza_custom_skills", portfolio.KindSkill, 2)
	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	got, err := DecodeOverrideEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, got.EventID)
	assert.Equal(t, "skills", got.Kind)
	assert.Equal(t, 2, got.Index)
	assert.True(t, ev.OccurredAt.Equal(got.OccurredAt))
}

func TestDecodeOverrideEvent_Rejects(t *testing.T) {
	_, err := DecodeOverrideEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = DecodeOverrideEvent([]byte(`{"slot":"mozza_profile_img"}`))
	assert.ErrorContains(t, err, "event_type")
}

func TestNewOverrideEventsReader_DefaultTopic(t *testing.T) {
	var cfg config.Config
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.GroupID = "g"

	r := NewOverrideEventsReader(cfg)
	defer r.Close()
	assert.Equal(t, TopicOverrideEvents, r.Config().Topic)
	assert.Equal(t, "g", r.Config().GroupID)
}
