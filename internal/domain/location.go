package domain

// Location - географическая точка. В API и JSON используются именованные поля
// lat/lng, во внутреннем хранилище точка лежит в формате GeoJSON,
// то есть массивом [lng, lat] - долгота первой.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinates возвращает точку в порядке GeoJSON: [lng, lat]
func (l Location) Coordinates() [2]float64 {
	return [2]float64{l.Lng, l.Lat}
}

// LocationFromCoordinates строит Location из GeoJSON-пары [lng, lat]
func LocationFromCoordinates(coords [2]float64) Location {
	return Location{Lat: coords[1], Lng: coords[0]}
}

// Пороговые значения радиуса поиска (метры)
const (
	// UnboundedRadiusThreshold - запросы с радиусом выше этого значения
	// трактуются как "без ограничения радиуса"
	UnboundedRadiusThreshold = 100_000_000
	// UnboundedRadiusMeters - фактический радиус, подставляемый хранилищем
	// для неограниченного запроса
	UnboundedRadiusMeters = 200_000_000
)

// Radius - радиус поиска: либо ограниченный в метрах, либо неограниченный.
// Разрешается один раз на границе API, чтобы магические пороги не
// протекали в логику запросов.
type Radius struct {
	meters    float64
	unbounded bool
}

// BoundedRadius создаёт ограниченный радиус
func BoundedRadius(meters float64) Radius {
	return Radius{meters: meters}
}

// UnboundedRadius создаёт неограниченный радиус
func UnboundedRadius() Radius {
	return Radius{unbounded: true}
}

// ParseRadius приводит числовой радиус из запроса к тегированному виду
func ParseRadius(meters float64) Radius {
	if meters > UnboundedRadiusThreshold {
		return UnboundedRadius()
	}
	return BoundedRadius(meters)
}

// IsUnbounded сообщает, что радиус не ограничен
func (r Radius) IsUnbounded() bool {
	return r.unbounded
}

// Meters возвращает радиус в метрах, пригодный для геозапроса
func (r Radius) Meters() float64 {
	if r.unbounded {
		return UnboundedRadiusMeters
	}
	return r.meters
}
