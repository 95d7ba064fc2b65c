package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection wraps the X server connection shared by the daemon's grab,
// hotkey, and query paths.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to the X server named by DISPLAY. The keybind
// subsystem is initialized here because both the nudge-key grab and
// keyboard handling during nudge mode depend on it.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	keybind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop dispatches X events until the process exits. Blocking; the
// daemon runs it on the main goroutine.
func (c *Connection) EventLoop() {
	xevent.Main(c.XUtil)
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
