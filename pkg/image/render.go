package image

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Render writes the Dockerfile for the recipe.
func (r *Recipe) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "FROM %s\n", r.BaseImage)

	if len(r.Packages) > 0 {
		fmt.Fprintf(&b, "\nRUN apt-get update && apt-get install -y --no-install-recommends %s \\\n    && rm -rf /var/lib/apt/lists/*\n",
			strings.Join(r.Packages, " "))
	}

	if r.Workdir != "" {
		fmt.Fprintf(&b, "\nWORKDIR %s\n", r.Workdir)
	}

	// Dependency inputs first so source edits don't bust the install layer
	if r.Manifest != "" {
		fmt.Fprintf(&b, "\nCOPY %s %s ./\n", r.Manifest, r.Lockfile)
		fmt.Fprintf(&b, "RUN %s\n", r.InstallCommand)
	}

	for _, step := range r.Copy {
		fmt.Fprintf(&b, "\nCOPY %s %s\n", step.Src, step.Dst)
	}

	if len(r.Env) > 0 {
		b.WriteString("\n")
		for _, env := range r.Env {
			fmt.Fprintf(&b, "ENV %s=%s\n", env.Name, env.Value)
		}
	}

	if len(r.Expose) > 0 {
		ports := make([]string, len(r.Expose))
		for i, p := range r.Expose {
			ports[i] = strconv.Itoa(p)
		}
		fmt.Fprintf(&b, "\nEXPOSE %s\n", strings.Join(ports, " "))
	}

	if hc := r.Healthcheck; hc != nil {
		fmt.Fprintf(&b, "\nHEALTHCHECK --interval=%s --timeout=%s", hc.Interval, hc.Timeout)
		if hc.StartPeriod != "" {
			fmt.Fprintf(&b, " --start-period=%s", hc.StartPeriod)
		}
		if hc.Retries > 0 {
			fmt.Fprintf(&b, " --retries=%d", hc.Retries)
		}
		fmt.Fprintf(&b, " \\\n    CMD %s\n", strings.Join(hc.Command, " "))
	}

	fmt.Fprintf(&b, "\nENTRYPOINT %s\n", jsonArgv(r.Entrypoint))

	_, err := io.WriteString(w, b.String())
	return err
}

// jsonArgv renders the exec-form instruction argument.
func jsonArgv(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = strconv.Quote(arg)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
