package grid

// Error types returned by insert and query operations. Check them with
// errors.IsType or errors.Type from github.com/aukilabs/go-tooling/pkg/errors.
const (
	// ErrTypeInvalidDimension reports a negative width, height or radius.
	ErrTypeInvalidDimension = "invalid_dimension"

	// ErrTypeScaleOverflow reports an object whose required cell scale cannot
	// be represented before exceeding the coordinate space.
	ErrTypeScaleOverflow = "scale_overflow"

	// ErrTypeCoordinateOverflow reports query arithmetic that would leave the
	// representable coordinate range.
	ErrTypeCoordinateOverflow = "coordinate_overflow"
)
