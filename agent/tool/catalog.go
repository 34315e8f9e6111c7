package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/mitchellh/mapstructure"

	contractx "github.com/tanpawarit/gala-concierge/agent/contract"
)

const (
	ToolSearchGuests  = "search_guests"
	ToolGetWeather    = "get_weather"
	ToolGetAirQuality = "get_air_quality"
	ToolWebSearch     = "web_search"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

type QueryInput struct {
	Query string `mapstructure:"query"`
}

// CityInput also accepts "location", which some models emit for the city.
type CityInput struct {
	City     string `mapstructure:"city"`
	Location string `mapstructure:"location"`
}

func (in CityInput) name() string {
	if v := strings.TrimSpace(in.City); v != "" {
		return v
	}
	return strings.TrimSpace(in.Location)
}

func BuildForToolbelt(belt *Toolbelt) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(belt)
}

func NewExecutor(belt *Toolbelt) Executor {
	fallback := DefaultExecutor()
	if belt == nil {
		return fallback
	}
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch tool {
		case ToolSearchGuests:
			var in QueryInput
			if err := decodeArgs(args, &in); err != nil {
				return invalidArgs(tool, err), nil
			}
			if strings.TrimSpace(in.Query) == "" {
				return contractx.ToolResult{Tool: tool, Error: "query is required"}, nil
			}
			return contractx.ToolResult{Tool: tool, Result: belt.SearchGuests(in.Query)}, nil
		case ToolGetWeather, ToolGetAirQuality:
			var in CityInput
			if err := decodeArgs(args, &in); err != nil {
				return invalidArgs(tool, err), nil
			}
			city := in.name()
			if city == "" {
				return contractx.ToolResult{Tool: tool, Error: "city is required"}, nil
			}
			if tool == ToolGetWeather {
				return contractx.ToolResult{Tool: tool, Result: belt.GetWeather(ctx, city)}, nil
			}
			return contractx.ToolResult{Tool: tool, Result: belt.GetAirQuality(ctx, city)}, nil
		case ToolWebSearch:
			var in QueryInput
			if err := decodeArgs(args, &in); err != nil {
				return invalidArgs(tool, err), nil
			}
			if strings.TrimSpace(in.Query) == "" {
				return contractx.ToolResult{Tool: tool, Error: "query is required"}, nil
			}
			return contractx.ToolResult{Tool: tool, Result: belt.WebSearch(ctx, in.Query)}, nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor() Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable", tool),
		}, nil
	}
}

func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchGuests,
			Desc: "Look up gala guests in the guest book by name, relation, description keyword or email. Returns up to three matching guest entries.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "Name, relation, description keyword or email of the guest", Required: true},
			}),
		},
		{
			Name: ToolGetWeather,
			Desc: "Get the current weather (forecast, temperature, feels like, sunrise, sunset) for one of the supported large US cities.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city": {Type: schema.String, Desc: "City name without state, e.g. Portland", Required: true},
			}),
		},
		{
			Name: ToolGetAirQuality,
			Desc: "Get today's air quality forecast (overall category, PM2.5 and O3 AQI) for one of the supported large US cities.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"city": {Type: schema.String, Desc: "City name without state, e.g. Portland", Required: true},
			}),
		},
		{
			Name: ToolWebSearch,
			Desc: "Search the web for general knowledge that is not in the guest book.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {Type: schema.String, Desc: "Search query", Required: true},
			}),
		},
	}
}

func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

func invalidArgs(tool string, err error) contractx.ToolResult {
	return contractx.ToolResult{
		Tool:  tool,
		Error: fmt.Sprintf("invalid arguments for tool=%s: %v", tool, err),
	}
}
