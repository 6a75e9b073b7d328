// Package frame turns caller data into raw RGBA raster frames.
//
// A caller-supplied [RenderFunc] draws one data frame into a [Figure]. The
// package derives one shared [Size] from the first frame, normalized so the
// pixel geometry is even in both dimensions, then rasterizes every frame at
// that size on a bounded worker pool. Results keep input order; the first
// failure cancels the remaining work and no partial result is returned.
package frame
