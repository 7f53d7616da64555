package urls

// Weather provider endpoints

// WeatherAPIBase is the WeatherAPI.com v1 base; forecasts come from /forecast.json.
const WeatherAPIBase = "https://api.weatherapi.com/v1"

// AccuweatherBase is the AccuWeather data service base, used for both the
// geoposition location key lookup and the 12-hour forecast.
const AccuweatherBase = "http://dataservice.accuweather.com"

// WeatherGOVBase is the National Weather Service API; /points/{lat},{lon}
// resolves the forecastHourly URL.
const WeatherGOVBase = "https://api.weather.gov"

// Network lifecycle endpoints

// PublicIPProbe answers with the caller's public IP as plain text.
const PublicIPProbe = "https://ip.me"

// TimeZoneLookup returns the local time for a coordinate pair.
const TimeZoneLookup = "https://timeapi.io/api/time/current/coordinate"

// DefaultNTPServer is queried when the configuration leaves ntp_server empty.
const DefaultNTPServer = "pool.ntp.org"

// Update check

// GitHubAPIBase is the base for the branch head lookup used by the update checker.
const GitHubAPIBase = "https://api.github.com"

// DefaultRepository is the upstream repository checked for new revisions.
const DefaultRepository = "jhaugh0/Rain-Chance-Monitor"
