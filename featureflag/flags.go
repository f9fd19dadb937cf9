package featureflag

type Flag string

const (
	FlagDisablePointQueries   Flag = "DISABLE_POINT_QUERIES"
	FlagDisableRadiusQueries  Flag = "DISABLE_RADIUS_QUERIES"
	FlagDisableDistanceFilter Flag = "DISABLE_DISTANCE_FILTER"
)
