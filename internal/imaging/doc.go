// Package imaging loads source images and produces the cropper's pixel
// output: the native-resolution export and the display-sized preview.
//
// # Coordinate Systems
//
// Two pixel spaces meet here:
//   - Displayed pixels: the image after it is scaled to fill the container.
//     Crop rectangles coming from the gesture trackers live here.
//   - Natural pixels: the source image's intrinsic resolution.
//
// Both have (0,0) at the top-left, X increasing rightward and Y downward.
// Aspect ratio is preserved when fitting, so one scale factor
// (naturalWidth / displayedWidth) maps between them.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Crop, Rasterize and
// RenderPreview are stateless and never mutate their input image.
//
// # Error Handling
//
// Functions return errors for:
//   - File, network and decode failures during loading
//   - Crop regions with no area after scaling
//   - Encoding errors during PNG output
package imaging
