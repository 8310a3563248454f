// Package artwork resolves poster URLs and samples a poster's dominant color.
//
// [PosterURL] is pure and never touches the network.
//
// [Extractor] downloads a poster, decodes it (JPEG, PNG, GIF or WebP), scales it to a single
// pixel and formats that pixel as "rgb(r, g, b)". Sampling is best-effort: every failure,
// including a host outside the allowlist, yields "".
package artwork
