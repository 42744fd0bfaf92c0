package platform

// AppName is reported to notification daemons that group by application.
const AppName = "PixelPad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where the platform supports it.
	IconPath string
	// TimeoutMillis is how long the notification stays visible. Zero
	// uses DefaultTimeout.
	TimeoutMillis int32
}

// DefaultTimeout is the display time used when Options.TimeoutMillis is zero.
const DefaultTimeout int32 = 5000

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return DefaultTimeout
	}
	return o.TimeoutMillis
}
