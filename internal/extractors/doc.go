// Package extractors converts exported survey documents into the plain
// Q-coded text the question parser reads. Extractors are registered by
// file extension; anything unregistered is treated as text.
package extractors
