package config

import (
	"time"
)

const (
	TRACE_ID_KEY = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//vectorDB
	QdrantPoolSize = 1 //2-5 is preferred for prod according to documentation

	//redis timeouts
	RedisReadTimeout  = 30 * time.Second
	RedisWriteTimeout = 30 * time.Second

	//external call budgets
	EmbeddingCallTimeout = 30 * time.Second
	VectorCallTimeout    = 30 * time.Second

	//http client pooling (custom llm endpoint)
	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//embedding batches sent per upsert
	EmbeddingBatchSize = 100

	//session titles are clamped to this many characters
	TitleMaxLen = 60
)
