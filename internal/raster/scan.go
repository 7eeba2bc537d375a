package raster

import "math"

// Point is a 2-D coordinate in device pixel space, already clipped to
// [0, width) x [0, height).
type Point struct {
	X, Y float64
}

// Line is one edge of a flattened outline to rasterize, referencing two
// already-clipped points.
type Line struct {
	Beg, End Point
}

func sign(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return -1
}

func drawDot(b *Buffer, px, py int, xAvg, yDiff float64) {
	c := b.At(px, py)
	c.Cover += yDiff
	c.Area += (1.0 - xAvg) * yDiff
}

// drawLine rasterizes one edge using an exact 2-D DDA: it walks every
// pixel boundary crossing between origin and goal, accumulating signed
// area/cover contributions so that the later integration pass can
// recover exact per-pixel coverage.
func drawLine(b *Buffer, origin, goal Point) {
	originX, goalX := origin.X, goal.X
	deltaX := goalX - originX
	pixelX := int(originX)

	var nextCrossingX, crossingGapX float64
	nextCrossingX = 100.0
	if deltaX != 0 {
		signedGapX := 1.0 / deltaX
		nextCrossingX = float64(int(originX)) - originX
		if deltaX > 0 {
			nextCrossingX += 1
		}
		nextCrossingX *= signedGapX
		crossingGapX = math.Abs(signedGapX)
	}

	originY, goalY := origin.Y, goal.Y
	deltaY := goalY - originY
	pixelY := int(originY)

	var nextCrossingY, crossingGapY float64
	nextCrossingY = 100.0
	if deltaY != 0 {
		signedGapY := 1.0 / deltaY
		nextCrossingY = float64(int(originY)) - originY
		if deltaY > 0 {
			nextCrossingY += 1
		}
		nextCrossingY *= signedGapY
		crossingGapY = math.Abs(signedGapY)
	}

	numIters := iabs(int(goalX)-int(originX)) + iabs(int(goalY)-int(originY))
	prevDistance := 0.0
	for iter := 0; iter < numIters; iter++ {
		if nextCrossingX < nextCrossingY {
			deltaDistance := nextCrossingX - prevDistance
			var averageX float64
			if deltaX > 0 {
				averageX = 1
			}
			averageX -= 0.5 * deltaX * deltaDistance
			drawDot(b, pixelX, pixelY, averageX, deltaY*deltaDistance)
			pixelX += int(sign(deltaX))
			prevDistance = nextCrossingX
			nextCrossingX += crossingGapX
		} else {
			deltaDistance := nextCrossingY - prevDistance
			x := originX - float64(pixelX) + nextCrossingY*deltaX
			averageX := x - 0.5*deltaX*deltaDistance
			drawDot(b, pixelX, pixelY, averageX, deltaY*deltaDistance)
			pixelY += int(sign(deltaY))
			prevDistance = nextCrossingY
			nextCrossingY += crossingGapY
		}
	}

	deltaDistance := 1.0 - prevDistance
	averageX := (goalX - float64(pixelX)) - 0.5*deltaX*deltaDistance
	drawDot(b, pixelX, pixelY, averageX, deltaY*deltaDistance)
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// DrawLines rasterizes every non-horizontal line into b. Horizontal
// lines contribute nothing to winding and are skipped, matching the
// reference rasterizer.
func DrawLines(b *Buffer, lines []Line) {
	for _, l := range lines {
		if l.Beg.Y != l.End.Y {
			drawLine(b, l.Beg, l.End)
		}
	}
}
