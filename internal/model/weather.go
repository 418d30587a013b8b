// internal/model/weather.go
package model

// WeatherReading is one current-weather lookup, already resolved to text.
// Fields the upstream did not send are empty strings.
type WeatherReading struct {
	City        string
	Temperature string
	FeelsLike   string
	Humidity    string
	Description string
	WindSpeed   string
}
