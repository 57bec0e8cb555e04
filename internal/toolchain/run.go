package toolchain

// RunRequest describes one `flutter run` session.
type RunRequest struct {
	Device string
	Flavor string
	Mode   Mode
	Extra  []string
}

// FlutterRunArgs assembles the arguments for `flutter run`. Debug is
// flutter's default mode and is left implicit.
func FlutterRunArgs(r RunRequest) []string {
	args := []string{"run"}
	if r.Device != "" {
		args = append(args, "-d", r.Device)
	}
	if r.Flavor != "" {
		args = append(args, "--flavor", r.Flavor)
	}
	if r.Mode != "" && r.Mode != ModeDebug {
		args = append(args, "--"+string(r.Mode))
	}
	return append(args, r.Extra...)
}
