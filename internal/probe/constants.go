package probe

// HTTP status code constants.
const (
	StatusOK                  = 200
	StatusUnprocessableEntity = 422
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	MaxReasons           = 5
)

// Score delta bounds for meaningful commits.
const (
	DeltaMin = 0.5
	DeltaMax = 2.5
)

// Price band bounds enforced by the service.
const (
	PriceFloor   = 50000
	PriceCeiling = 500000
)
