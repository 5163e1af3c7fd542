package tasks

import (
	"strings"

	"github.com/desertthunder/moodtunes/internal/models"
)

// Catalog maps a lower-cased mood to the songs recommended for it.
type Catalog map[string][]models.Song

// Songs returns a copy of the songs for mood, matched case-insensitively.
//
// Unknown moods yield an empty, non-nil slice.
func (c Catalog) Songs(mood string) []models.Song {
	songs := c[strings.ToLower(mood)]
	out := make([]models.Song, len(songs))
	copy(out, songs)
	return out
}

// Moods lists the moods the catalog has songs for.
func (c Catalog) Moods() []string {
	moods := make([]string, 0, len(c))
	for _, m := range models.Moods {
		if _, ok := c[m.String()]; ok {
			moods = append(moods, m.String())
		}
	}
	return moods
}

// DefaultCatalog returns the built-in song list, six songs per mood.
func DefaultCatalog() Catalog {
	return Catalog{
		models.MoodHappy.String(): {
			{Title: "Love Story", Artist: "Taylor Swift", URL: "https://youtu.be/8xg3vE8Ie_E?si=ANah2S5dxLuntc8T"},
			{Title: "Cantik", Artist: "Tiara Andini & Arsy Widianto", URL: "https://youtu.be/QMpbUCoW65M?si=312tnWqd8E0_8dFb"},
			{Title: "Siapkah Kau 'Tuk Jatuh Cinta Lagi", Artist: "Hivi!", URL: "https://youtu.be/kX1O93X77d4?si=Da6cSiNYIjsDlmU8"},
			{Title: "Steal My Girl", Artist: "One Direction", URL: "https://youtu.be/UpsKGvPjAgw?si=VumKk_E06oDxAzig"},
			{Title: "The Lazy Song", Artist: "Bruno Mars", URL: "https://youtu.be/fLexgOxsZu0?si=dFDtGr_bTt8FlNhh"},
			{Title: "Shake It Off", Artist: "Taylor Swift", URL: "https://youtu.be/nfWlot6h_JM?si=o5Q2ULus2ELpdfxt"},
		},
		models.MoodSad.String(): {
			{Title: "Selamat (Selamat Tinggal)", Artist: "Virgoun & Audy", URL: "https://youtu.be/ZPxqSAHonSs?si=NTE7iwD-FykGzBAV"},
			{Title: "Someone Like You", Artist: "Adele", URL: "https://youtu.be/hLQl3WQQoQ0?si=jSqfhFvUP8Nchc-v"},
			{Title: "Happier", Artist: "Olivia Rodrigo", URL: "https://www.youtube.com/watch?v=Kz7GzFw310U"},
			{Title: "We Can't be Friend", Artist: "Ariana Grande", URL: "https://youtu.be/KNtJGQkC-WI?si=WHYHp1k5GPgKWNcv"},
			{Title: "No Body Gets Me", Artist: "SZA", URL: "https://youtu.be/tOTr9CCutiE?si=Dovqgl6YgmtC8gqm"},
			{Title: "Night Changes", Artist: "One Direction", URL: "https://youtu.be/syFZfO_wfMQ?si=Tw3Oqk0slnl3Bu9m"},
		},
		models.MoodChill.String(): {
			{Title: "Supoerhero", Artist: "Lauv", URL: "https://youtu.be/Z2dE90tjU6s?si=aVpEiYPXrcY7nH3e"},
			{Title: "Weightless", Artist: "Marconi Union", URL: "https://youtu.be/UfcAVejslrU?si=OKD58ADg1tdWt-zO"},
			{Title: "Come Away With Me", Artist: "Norah Jones", URL: "https://youtu.be/lbjZPFBD6JU?si=FPBb-C1IKBgQBc_q"},
			{Title: "Island In The Sun", Artist: "Weezer", URL: "https://youtu.be/erG5rgNYSdk?si=ZEf8cicB0L5piPEP"},
			{Title: "Sunday Morning", Artist: "Maroon 5", URL: "https://youtu.be/S2Cti12XBw4?si=osnIeNWTYroyQ5Wi"},
			{Title: "What A Wonderful World", Artist: "Louis Armstrong", URL: "https://youtu.be/rBrd_3VMC3c?si=C7zbanhcOLFkN7Ak"},
		},
		models.MoodAngry.String(): {
			{Title: "The Way I Loved You", Artist: "Taylor Swift", URL: "https://youtu.be/DlexmDDSDZ0?si=LFKp4b3-QJRA2oVx"},
			{Title: "No Body, No Crime (feat. HAIM)", Artist: "Taylor Swift ft. HAIM", URL: "https://youtu.be/IEPomqor2A8?si=vQTu43Ap-xx0aLVq"},
			{Title: "Good 4 U", Artist: "Olivia Rodrigo", URL: "https://youtu.be/gNi_6U5Pm_o?si=v1-z_ZgZhQwH6-Pr"},
			{Title: "I hate You", Artist: "SZA", URL: "https://youtu.be/O04nsyB8gqA?si=Q-kcke5bfwjfpYrS"},
			{Title: "Payphone", Artist: "Maroon 5 ft. Wiz Khalifa", URL: "https://youtu.be/KRaWnd3LJfs?si=i6IpJpjZV4dNtaxT"},
			{Title: "That Sould be Me", Artist: "Justin Bieber", URL: "https://youtu.be/_pBq1lz1Riw?si=JQhDH9aai4o9APP8"},
		},
		models.MoodRomantic.String(): {
			{Title: "Paper Rings", Artist: "Taylor Swift", URL: "https://youtu.be/8zdg-pDF10g?si=HhtjPK2HRgjFnipo"},
			{Title: "Die With A Smile", Artist: "Lady Gaga & Bruno Mars", URL: "https://youtu.be/kPa7bsKwL-c?si=gHIzXgRqFktNtqkG"},
			{Title: "I Love You 3000", Artist: "Stephanie Poetri", URL: "https://youtu.be/cPkE0IbDVs4?si=FeZqQKC4r0Usb3FL"},
			{Title: "Perfect", Artist: "Ed Sheeran", URL: "https://youtu.be/2Vv-BfVoq4g?si=qJrEa5Hqp-WYZNtk"},
			{Title: "cardigan", Artist: "Taylor Swift", URL: "https://youtu.be/K-a8s8OLBSE?si=J7KEKXm2R4U2BmNh"},
			{Title: "A Thousand Years", Artist: "Christina Putri", URL: "https://youtu.be/rtOvBOTyX00?si=lVg1dJMp_20RCWMN"},
		},
	}
}
