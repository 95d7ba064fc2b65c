package geometry

// Gravity names the part of a window that stays anchored during a resize.
type Gravity int

const (
	GravityNorthWest Gravity = iota
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

func (g Gravity) String() string {
	switch g {
	case GravityNorthWest:
		return "northwest"
	case GravityNorth:
		return "north"
	case GravityNorthEast:
		return "northeast"
	case GravityWest:
		return "west"
	case GravityCenter:
		return "center"
	case GravityEast:
		return "east"
	case GravitySouthWest:
		return "southwest"
	case GravitySouth:
		return "south"
	case GravitySouthEast:
		return "southeast"
	case GravityStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ResizeWithGravity resizes a rect to the new dimensions, keeping the
// gravity-named part of the old rect fixed in place. Center-column
// gravities split the size difference evenly.
func ResizeWithGravity(old Rect, gravity Gravity, newWidth, newHeight int) Rect {
	var out Rect

	switch gravity {
	case GravityNorthWest, GravityWest, GravitySouthWest:
		out.X = old.X
	case GravityNorth, GravityCenter, GravitySouth:
		out.X = old.X + (old.Width-newWidth)/2
	case GravityNorthEast, GravityEast, GravitySouthEast:
		out.X = old.X + (old.Width - newWidth)
	default:
		out.X = old.X
	}
	out.Width = newWidth

	switch gravity {
	case GravityNorthWest, GravityNorth, GravityNorthEast:
		out.Y = old.Y
	case GravityWest, GravityCenter, GravityEast:
		out.Y = old.Y + (old.Height-newHeight)/2
	case GravitySouthWest, GravitySouth, GravitySouthEast:
		out.Y = old.Y + (old.Height - newHeight)
	default:
		out.Y = old.Y
	}
	out.Height = newHeight

	return out
}
