package executil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"text/template"
	"time"
)

// waitDelay bounds how long a cancelled command may hold its output pipes.
const waitDelay = 2 * time.Second

// TemplateData defines the available fields in command templates.
type TemplateData struct {
	// Args are the canonical tool arguments.
	Args any
	// ToolName is the tool name.
	ToolName string
	// RequestID links the command with gateway logs.
	RequestID string
}

// Output is the captured result of a finished command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr.
func (o Output) Combined() string {
	return o.Stdout + o.Stderr
}

// RenderTemplate renders a string template with TemplateData.
// The arg function looks up a top-level key of object arguments.
func RenderTemplate(value string, data TemplateData) (string, error) {
	tmpl, err := template.New("value").Funcs(template.FuncMap{
		"arg": func(name string) any {
			obj, ok := data.Args.(map[string]any)
			if !ok {
				return nil
			}
			return obj[name]
		},
	}).Parse(value)
	if err != nil {
		return "", fmt.Errorf("template parse: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template render: %w", err)
	}
	return buf.String(), nil
}

// BuildCommand builds an exec.Cmd with rendered command, args and env.
// Without args the command is run through bash -c.
func BuildCommand(ctx context.Context, command string, args []string, env map[string]string, data TemplateData) (*exec.Cmd, error) {
	renderedCommand, err := RenderTemplate(command, data)
	if err != nil {
		return nil, err
	}

	renderedArgs := make([]string, 0, len(args))
	for _, arg := range args {
		rendered, err := RenderTemplate(arg, data)
		if err != nil {
			return nil, err
		}
		renderedArgs = append(renderedArgs, rendered)
	}

	var cmd *exec.Cmd
	if len(renderedArgs) == 0 {
		cmd = exec.CommandContext(ctx, "bash", "-c", renderedCommand)
	} else {
		cmd = exec.CommandContext(ctx, renderedCommand, renderedArgs...)
	}

	cmd.WaitDelay = waitDelay
	cmd.Env = os.Environ()
	for key, value := range env {
		rendered, err := RenderTemplate(value, data)
		if err != nil {
			return nil, err
		}
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, rendered))
	}

	return cmd, nil
}

// RunCommand executes a command, feeding stdin when non-nil, and captures
// stdout and stderr separately. ExitCode is -1 when the process did not run.
func RunCommand(ctx context.Context, command string, args []string, env map[string]string, data TemplateData, stdin []byte) (Output, error) {
	cmd, err := BuildCommand(ctx, command, args, env, data)
	if err != nil {
		return Output{ExitCode: -1}, err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	err = cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: -1}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}
	return out, err
}
