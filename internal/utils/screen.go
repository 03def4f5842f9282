package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window

	xScreen *xproto.ScreenInfo
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	xScreen = setup.DefaultScreen(XConn)
	XRoot = xScreen.Root
	return nil
}

// ScreenSize reports the pixel size of the default X11 screen. It is used to
// size the window before raylib has a monitor to ask.
func ScreenSize() (int, int, error) {
	if XConn == nil {
		if err := InitX11(); err != nil {
			return 0, 0, err
		}
	}

	geometry, err := xproto.GetGeometry(XConn, xproto.Drawable(XRoot)).Reply()
	if err != nil {
		return int(xScreen.WidthInPixels), int(xScreen.HeightInPixels), nil
	}

	return int(geometry.Width), int(geometry.Height), nil
}

// CloseX11 drops the X connection opened by ScreenSize.
func CloseX11() {
	if XConn != nil {
		XConn.Close()
		XConn = nil
	}
}
