// Package meta describes the running function: the service identity encoded
// in the Lambda function name and the Go build that produced the binary.
package meta

import (
	"encoding/json"
	"os"
	"runtime/debug"
	"strings"
)

// ServiceInfo 服务信息，从 AWS_LAMBDA_FUNCTION_NAME 解析
type ServiceInfo struct {
	Business  string `json:"business"`
	Framework string `json:"framework"`
	Runtime   string `json:"runtime"`
	Resource  string `json:"resource"`
	Instance  string `json:"instance"`
}

// BuildInfo 构建信息
type BuildInfo struct {
	Module    string `json:"module"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Revision  string `json:"revision"`
	Built     string `json:"built"`
}

// Meta 完整的 meta 信息结构
type Meta struct {
	Function string      `json:"function"`
	Service  ServiceInfo `json:"service"`
	Build    BuildInfo   `json:"build"`
}

// ParseServiceInfo splits a function name of the form
// business-framework-runtime-resource-instance. Missing parts stay empty and
// the instance keeps any extra dashes.
func ParseServiceInfo(funcName string) ServiceInfo {
	info := ServiceInfo{}
	if funcName == "" {
		return info
	}

	parts := strings.SplitN(funcName, "-", 5)
	fields := []*string{&info.Business, &info.Framework, &info.Runtime, &info.Resource, &info.Instance}
	for i, part := range parts {
		*fields[i] = part
	}
	return info
}

func parseBuildInfo() BuildInfo {
	info := BuildInfo{}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.Module = buildInfo.Main.Path
	info.Version = buildInfo.Main.Version
	info.GoVersion = buildInfo.GoVersion

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Revision = setting.Value
		case "vcs.time":
			info.Built = setting.Value
		}
	}

	return info
}

// Generate collects meta information from the environment and the binary.
func Generate() Meta {
	funcName := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	return Meta{
		Function: funcName,
		Service:  ParseServiceInfo(funcName),
		Build:    parseBuildInfo(),
	}
}

// JSON renders m, falling back to "{}".
func (m Meta) JSON() string {
	b, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(b)
}
