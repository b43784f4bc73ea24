/*
 * Icarus - UCI chess engine in GO
 *
 * MIT License
 *
 * Copyright (c) 2025 Sp00ph
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	. "github.com/Sp00ph/icarus/internal/types"
)

// ErrInvalidFen is returned for any malformed or unsupported FEN
// string: bad piece field, duplicated squares, missing kings, unbound
// castling rights, a halfmove clock of 100 or more, etc.
var ErrInvalidFen = errors.New("invalid fen")

// StartPos returns a board with the standard chess starting position
func StartPos() Board {
	b, err := ReadFen(StartFen)
	if err != nil {
		panic(err)
	}
	return b
}

// ReadFen parses a standard 6-field FEN into a Board. The castling
// field accepts K/Q/k/q and Chess960 file letters A-H/a-h. The en
// passant field accepts only ranks 3 and 6; the descriptor is then
// recomputed so it is only kept when a legal capture exists.
func ReadFen(fen string) (Board, error) {
	var b Board
	b.castlingRights[White] = NoCastlingRights
	b.castlingRights[Black] = NoCastlingRights
	for sq := SqA1; sq <= SqH8; sq++ {
		b.mailbox[sq] = PtNone
	}

	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) != 6 {
		return b, ErrInvalidFen
	}
	piecesField, stmField, castlesField, epField, hmcField, fmcField :=
		parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]

	rank := 8
	for _, line := range strings.Split(piecesField, "/") {
		rank--
		if rank < 0 {
			return b, ErrInvalidFen
		}

		file := 0
		for i := 0; i < len(line); i++ {
			ch := line[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return b, ErrInvalidFen
			}

			pt := PieceTypeFromChar(ch)
			if pt == PtNone {
				return b, ErrInvalidFen
			}
			color := White
			if ch >= 'a' {
				color = Black
			}

			sq := SquareOf(File(file), Rank(rank))
			if b.mailbox[sq] != PtNone {
				return b, ErrInvalidFen
			}
			b.toggleSquare(sq, color, pt)
			b.mailbox[sq] = pt
			file++
		}
		if file > 8 {
			return b, ErrInvalidFen
		}
	}
	if rank != 0 {
		return b, ErrInvalidFen
	}

	// both sides need exactly one king
	if b.ColoredPieces(King, White).PopCount() != 1 ||
		b.ColoredPieces(King, Black).PopCount() != 1 {
		return b, ErrInvalidFen
	}

	switch stmField {
	case "w":
		b.stm = White
	case "b":
		b.stm = Black
		b.hash ^= zobrist.blackToMove
	default:
		return b, ErrInvalidFen
	}

	if castlesField != "-" {
		for i := 0; i < len(castlesField); i++ {
			ch := castlesField[i]
			color := White
			if ch >= 'a' {
				color = Black
			}
			king := b.King(color)

			var file File
			switch lower := ch | 0x20; {
			case lower >= 'a' && lower <= 'h':
				file = File(lower - 'a')
			case lower == 'k':
				file = FileNone
				for f := king.FileOf() + 1; f <= FileH; f++ {
					if b.ColoredPieces(Rook, color).Has(SquareOf(f, king.RankOf())) {
						file = f
						break
					}
				}
			case lower == 'q':
				file = FileNone
				for f := king.FileOf(); f > FileA; {
					f--
					if b.ColoredPieces(Rook, color).Has(SquareOf(f, king.RankOf())) {
						file = f
						break
					}
				}
			default:
				return b, ErrInvalidFen
			}

			if file == FileNone {
				return b, ErrInvalidFen
			}
			rookSq := SquareOf(file, king.RankOf())
			if !b.ColoredPieces(Rook, color).Has(rookSq) {
				return b, ErrInvalidFen
			}

			dir := CastlingLong
			if file > king.FileOf() {
				dir = CastlingShort
			}
			b.setCastles(color, dir, file)
		}
	}

	if epField != "-" {
		if len(epField) != 2 {
			return b, ErrInvalidFen
		}
		f := File(epField[0] - 'a')
		if !f.IsValid() || (epField[1] != '3' && epField[1] != '6') {
			return b, ErrInvalidFen
		}
		b.calcEpFile(f)
	}

	hmc, err := strconv.Atoi(hmcField)
	if err != nil || hmc < 0 || hmc >= 100 {
		return b, ErrInvalidFen
	}
	b.halfmoveClock = uint8(hmc)

	fmc, err := strconv.Atoi(fmcField)
	if err != nil || fmc < 0 {
		return b, ErrInvalidFen
	}
	b.fullmoveCount = uint16(fmc)

	b.calcThreats()
	return b, nil
}

// Fen returns the FEN string of the position. In chess960 mode the
// castling field uses the rook file letters.
func (b *Board) Fen(chess960 bool) string {
	var res strings.Builder

	for rank := Rank8; ; rank-- {
		gap := 0
		for file := FileA; file <= FileH; file++ {
			sq := SquareOf(file, rank)
			if pt := b.PieceOn(sq); pt != PtNone {
				if gap != 0 {
					res.WriteString(strconv.Itoa(gap))
					gap = 0
				}
				color := White
				if b.colors[Black].Has(sq) {
					color = Black
				}
				res.WriteString(pt.FenChar(color))
			} else {
				gap++
			}
		}
		if gap != 0 {
			res.WriteString(strconv.Itoa(gap))
		}
		if rank == Rank1 {
			res.WriteString(" ")
			break
		}
		res.WriteString("/")
	}

	res.WriteString(b.stm.String())
	res.WriteString(" ")

	var castles strings.Builder
	appendRight := func(c Color, d CastlingDirection, std string) {
		f := b.castlingRights[c].Get(d)
		if f == FileNone {
			return
		}
		s := std
		if chess960 {
			s = f.String()
		}
		if c == White {
			s = strings.ToUpper(s)
		}
		castles.WriteString(s)
	}
	appendRight(White, CastlingShort, "k")
	appendRight(White, CastlingLong, "q")
	appendRight(Black, CastlingShort, "k")
	appendRight(Black, CastlingLong, "q")
	if castles.Len() == 0 {
		castles.WriteString("-")
	}
	res.WriteString(castles.String())
	res.WriteString(" ")

	if b.enPassant.IsSet() {
		res.WriteString(b.enPassant.FileOf().String())
		res.WriteString(Rank6.RelativeTo(b.stm).String())
	} else {
		res.WriteString("-")
	}

	res.WriteString(fmt.Sprintf(" %d %d", b.halfmoveClock, b.fullmoveCount))
	return res.String()
}

// String returns a human readable representation of the board with a
// FEN and zobrist key footer. Used by the UCI "d" command.
func (b *Board) String() string {
	return b.StringBoard(false)
}

// StringBoard returns the human readable board; chess960 selects the
// castling notation of the FEN footer.
func (b *Board) StringBoard(chess960 bool) string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for rank := Rank8; ; rank-- {
		os.WriteString("|")
		for file := FileA; file <= FileH; file++ {
			sq := SquareOf(file, rank)
			ch := " "
			if pt := b.PieceOn(sq); pt != PtNone {
				color := White
				if b.colors[Black].Has(sq) {
					color = Black
				}
				ch = pt.FenChar(color)
			}
			os.WriteString(" " + ch + " |")
		}
		os.WriteString(" " + rank.String() + "\n")
		os.WriteString("+---+---+---+---+---+---+---+---+\n")
		if rank == Rank1 {
			break
		}
	}
	os.WriteString("  a   b   c   d   e   f   g   h\n\n")
	os.WriteString("FEN: " + b.Fen(chess960) + "\n")
	os.WriteString(fmt.Sprintf("Zobrist key: %#016x\n", uint64(b.hash)))
	return os.String()
}

// ParseMove parses a move in long algebraic notation against the
// current position. Castling is accepted both as king-to-G/C (standard
// chess) and as king-takes-rook (Chess960). Returns MoveNone when the
// text is not a syntactically valid move for this position; legality
// must be checked separately with IsLegal.
func (b *Board) ParseMove(lan string, chess960 bool) Move {
	if len(lan) < 4 || len(lan) > 5 {
		return MoveNone
	}

	from := MakeSquare(lan[:2])
	to := MakeSquare(lan[2:4])
	if from == SqNone || to == SqNone {
		return MoveNone
	}

	if len(lan) == 5 {
		pt := PieceTypeFromChar(lan[4])
		if pt == PtNone || pt == Pawn || pt == King {
			return MoveNone
		}
		return NewPromotion(from, to, pt)
	}

	castleFile := FileNone
	if b.PieceOn(from) == King && b.colors[b.stm].Has(from) {
		if !chess960 && from.FileOf() == FileE &&
			(to.FileOf() == FileC || to.FileOf() == FileG) &&
			from.RankOf() == to.RankOf() && b.PieceOn(to) == PtNone {
			dir := CastlingShort
			if to.FileOf() == FileC {
				dir = CastlingLong
			}
			castleFile = b.castlingRights[b.stm].Get(dir)
			if castleFile == FileNone {
				return MoveNone
			}
		} else if b.ColoredPieceOn(to, b.stm) == Rook {
			castleFile = to.FileOf()
		}
	}

	if castleFile != FileNone {
		return NewMove(from, SquareOf(castleFile, to.RankOf()), Castle)
	}

	isEp := b.PieceOn(from) == Pawn &&
		from.RankOf() == Rank5.RelativeTo(b.stm) &&
		b.enPassant.IsSet() && b.enPassant.FileOf() == to.FileOf() &&
		b.PieceOn(to) == PtNone && from.FileOf() != to.FileOf()

	flag := Normal
	if isEp {
		flag = EnPassant
	}
	return NewMove(from, to, flag)
}
