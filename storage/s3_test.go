package storage

import (
	"testing"

	"deckbuilder/config"

	"github.com/stretchr/testify/assert"
)

func TestNewS3StoreFromConfigWithoutBucket(t *testing.T) {
	config.S3Bucket = ""
	assert.Nil(t, NewS3StoreFromConfig())
}

func TestPublicBaseURL(t *testing.T) {
	config.S3Bucket = "decks"
	config.S3Region = "eu-west-3"

	config.S3PublicUrl, config.S3Endpoint = "https://cdn.example.com/", ""
	assert.Equal(t, "https://cdn.example.com", PublicBaseURL())

	config.S3PublicUrl, config.S3Endpoint = "", "http://minio:9000"
	assert.Equal(t, "http://minio:9000/decks", PublicBaseURL())

	config.S3PublicUrl, config.S3Endpoint = "", ""
	assert.Equal(t, "https://decks.s3.eu-west-3.amazonaws.com", PublicBaseURL())

	store := NewS3StoreFromConfig()
	if assert.NotNil(t, store) {
		assert.Equal(t, "decks", store.bucket)
	}
}
