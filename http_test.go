package mobilestore

import (
	"fmt"
	"net/http"
	"net/http/httptest"
)

// fakeImageBytes payload served as the full resolution product image
var fakeImageBytes = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 0x4a, 0x46}

// newTestSite one httptest server impersonating all three source sites
func newTestSite() *httptest.Server {
	mux := http.NewServeMux()

	listing := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="makers"><ul>
<li><a href="acme_x1.php"><span>Acme X1</span></a></li>
<li><a href="acme_x2.php"><span>Acme X2</span></a></li>
<li><a href="acme_x3.php"><span>Acme X3</span></a></li>
<li><a href="bolt_a1.php"><span>Bolt A1</span></a></li>
<li><a href="bolt_a2.php"><span>Bolt A2</span></a></li>
</ul></div></body></html>`)
	}
	mux.HandleFunc("/results", listing)
	// the same listing on a nested path
	mux.HandleFunc("/phones/results", listing)

	mux.HandleFunc("/results_empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing to see</p></body></html>`)
	})

	detail := func(model string) string {
		return fmt.Sprintf(`<html><body>
<h1 class="specs-phone-name-title">%s</h1>
<table><tr><th>Body</th></tr>
<tr><td>Dimensions</td><td>157.5 x 74.7 x 7.6 mm</td></tr>
<tr><td>Weight</td><td>173 g</td></tr></table>
<table><tr><th>Display</th></tr>
<tr><td>Size</td><td>6.39 inches</td></tr>
<tr><td>malformed row with one cell</td></tr></table>
<table><tr><th>Platform</th></tr>
<tr><td>OS</td><td>Android 9.0</td></tr>
<tr><td>Chipset</td><td>Snapdragon 855</td></tr></table>
<table><tr><th>Memory</th></tr>
<tr><td>Internal</td><td>128 GB</td></tr></table>
<table><tr><th>Main Camera</th></tr>
<tr><td>Features</td><td>Dual-LED flash, HDR</td></tr></table>
<table><tr><th>Battery</th></tr>
<tr><td></td><td>Li-Po 3300 mAh</td></tr></table>
<table><tr><th>Features</th></tr>
<tr><td>Sensors</td><td>Fingerprint, accelerometer</td></tr></table>
</body></html>`, model)
	}
	mux.HandleFunc("/acme_x1.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detail("Acme X1"))
	})
	mux.HandleFunc("/acme_x2.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detail("Acme X2"))
	})
	mux.HandleFunc("/bolt_a1.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, detail("Bolt A1"))
	})
	mux.HandleFunc("/broken.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no title here</p></body></html>`)
	})

	mux.HandleFunc("/fsearch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="gsc-resultsbox-visible">
<a href="http://%s/irrelevant">Some review</a>
<a href="http://%s/fspecs">Acme X1 Full Phone Specifications</a>
</div></body></html>`, r.Host, r.Host)
	})

	mux.HandleFunc("/fspecs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div id="details">
<label>Manufacturer</label><span>Acme</span>
<label>Price (USD)</label><span>$449.99 (about EUR 410)</span>
<label>Description</label><span>The Acme X1 isn't just fast.</span>
</div>
<ul class="hList">
<li>48 MP + 5 MP Dual Rear Camera with LED flash</li>
<li>25 MP Front Camera with HDR</li>
<li>6.39 inch AMOLED display</li>
</ul></body></html>`)
	})

	mux.HandleFunc("/asearch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="product-name-container">
<a href="http://%s/product">Acme X1 6/128GB</a>
</div></body></html>`, r.Host)
	})
	mux.HandleFunc("/asearch_nozoom", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="product-name-container">
<a href="http://%s/results_empty">Acme X1 6/128GB</a>
</div></body></html>`, r.Host)
	})
	mux.HandleFunc("/asearch_empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no products found</p></body></html>`)
	})
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div id="zoomerViewPort">
<img src="http://%s/full.jpg"/>
<img src="http://%s/thumb.jpg"/>
</div></body></html>`, r.Host, r.Host)
	})
	mux.HandleFunc("/full.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(fakeImageBytes)
	})

	return httptest.NewServer(mux)
}
