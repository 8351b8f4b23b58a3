package banner

// Kinds of images the client shows: the header strip and the rotating slides.
const (
	KindBanner   = "banner"
	KindCarousel = "carousel"
)

// Item is the public DTO returned by the banner API.
type Item struct {
	ID    int    `json:"bannerID"`
	Image string `json:"bannerImg"`
	Alt   string `json:"alt,omitempty"`
	Kind  string `json:"kind"`
	Ord   int    `json:"ord"`
}

// Defaults is what a fresh database is seeded with.
var Defaults = []Item{
	{Image: "/banner.png", Alt: "CookNest", Kind: KindBanner, Ord: 0},
	{Image: "/4.png", Alt: "Slide 1", Kind: KindCarousel, Ord: 1},
	{Image: "/5.png", Alt: "Slide 2", Kind: KindCarousel, Ord: 2},
	{Image: "/6.png", Alt: "Slide 3", Kind: KindCarousel, Ord: 3},
	{Image: "/7.png", Alt: "Slide 4", Kind: KindCarousel, Ord: 4},
	{Image: "/8.png", Alt: "Slide 5", Kind: KindCarousel, Ord: 5},
	{Image: "/9.png", Alt: "Slide 6", Kind: KindCarousel, Ord: 6},
}
