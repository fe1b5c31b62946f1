package entpool

import "errors"

var (
	// ErrPoolDoesNotContainEntity is returned when an operation references
	// an entity the pool does not currently own.
	ErrPoolDoesNotContainEntity = errors.New("pool does not contain entity")

	// ErrEntityIsNotEnabled is returned when a mutation is attempted on an
	// entity whose destruction has been requested.
	ErrEntityIsNotEnabled = errors.New("entity is not enabled")

	// ErrEntityNotDestroyedYet signals that an entity's retain count hit
	// zero while the entity was still enabled. This is a lifecycle bug in
	// calling code and is surfaced as a panic, not a returned error.
	ErrEntityNotDestroyedYet = errors.New("entity is not destroyed yet")

	// ErrDoubleRelease signals a release without a matching retain. Like
	// ErrEntityNotDestroyedYet it indicates corrupted reference counting
	// and is surfaced as a panic.
	ErrDoubleRelease = errors.New("entity released by non-owner")

	// ErrPoolStillHasRetainedEntities is returned by DestroyAllEntities
	// when destroyed entities remain retained by external owners after the
	// sweep. It signals a reference leak in calling code.
	ErrPoolStillHasRetainedEntities = errors.New("pool still has retained entities")

	// ErrPoolMetaDataMismatch is returned at pool construction when the
	// component name/type table length disagrees with the configured total
	// component count.
	ErrPoolMetaDataMismatch = errors.New("pool metadata does not match total components")

	ErrEntityIndexDoesNotExist  = errors.New("entity index does not exist")
	ErrEntityIndexAlreadyExists = errors.New("entity index already exists")

	ErrComponentSlotOccupied    = errors.New("component slot already occupied")
	ErrComponentSlotEmpty       = errors.New("component slot is empty")
	ErrComponentIndexOutOfRange = errors.New("component index out of range")

	// ErrComponentTypeUnknown is returned by NewComponent when the recycle
	// stack for an index is empty and no component type was registered via
	// pool metadata, so no fresh instance can be constructed.
	ErrComponentTypeUnknown = errors.New("no component type registered for index")
)
