package repository

import "errors"

var (
	ErrRedisConnection     = errors.New("redis connection error")
	ErrInvalidSnapshotData = errors.New("invalid subject snapshot data")
	ErrInvalidConfigData   = errors.New("invalid planner config data")
	ErrInvalidOrderData    = errors.New("invalid payment order data")
)
