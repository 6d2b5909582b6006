package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignID(t *testing.T) {
	assert.Equal(t, "spring-2024", NewCampaignID("spring-2024"))
	assert.Equal(t, "spring-2024", NewCampaignID("  spring-2024 "))

	generated := NewCampaignID(" ")
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.NotEqual(t, generated, NewCampaignID(""))
}

func TestNullableCampaignID(t *testing.T) {
	assert.Nil(t, nullableCampaignID(""))

	got := nullableCampaignID("spring-2024")
	require.NotNil(t, got)
	assert.Equal(t, "spring-2024", *got)
}

func TestSchemaKeysCampaignsByText(t *testing.T) {
	assert.Contains(t, schemaSQL, "id          TEXT PRIMARY KEY")
	assert.Contains(t, schemaSQL, "campaign_id         TEXT,")
	assert.NotContains(t, schemaSQL, "REFERENCES feedback_campaigns")
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS feedback_campaigns")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS feedback_evaluations")
}
