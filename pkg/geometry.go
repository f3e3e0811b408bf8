package lightmap

// StripGeometry describes one charge-readout strip orientation. Width and
// Height enter the position reconstruction only as inverse weights.
type StripGeometry struct {
	Width   float64
	Height  float64
	XOffset float64
	YOffset float64
}

// Local IDs greater than 15 correspond to X-channels, otherwise Y-channels.
const maxYChannelLocalID = 15

var (
	xStripGeometry = StripGeometry{Width: 96., Height: 6., XOffset: -96. / 2., YOffset: 0.}
	yStripGeometry = StripGeometry{Width: 6., Height: 96., XOffset: 0., YOffset: -96. / 2.}
)

func IsXChannel(localID uint16) bool {
	return localID > maxYChannelLocalID
}

func ChannelGeometry(localID uint16) StripGeometry {
	if IsXChannel(localID) {
		return xStripGeometry
	}
	return yStripGeometry
}

// SetStripGeometry overrides the builtin strip constants, e.g. with values
// read from the calibration database for a given run.
func SetStripGeometry(x StripGeometry, y StripGeometry) {
	xStripGeometry = x
	yStripGeometry = y
}
